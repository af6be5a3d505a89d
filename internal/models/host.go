package models

type Host string

const (
	CURSEFORGE Host = "curseforge"
	MODRINTH   Host = "modrinth"
	DIRECT     Host = "direct"
)

func (h Host) String() string {
	return string(h)
}

type ArtifactType string

const (
	MOD        ArtifactType = "mod"
	SHADERPACK ArtifactType = "shaderpack"
	DATAPACK   ArtifactType = "datapack"
	MODPACK    ArtifactType = "modpack"
	INSTALLER  ArtifactType = "installer"
	LAUNCHER   ArtifactType = "launcher"
	SERVER     ArtifactType = "server"
	JDK        ArtifactType = "jdk"
)

func (t ArtifactType) String() string {
	return string(t)
}
