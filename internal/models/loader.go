package models

type Loader string

const (
	FABRIC   Loader = "fabric"
	FORGE    Loader = "forge"
	IRIS     Loader = "iris"
	NEOFORGE Loader = "neoforge"
	QUILT    Loader = "quilt"
	// NONE marks artifacts that are not bound to a loader (installers,
	// launchers, datapacks shipped as plain zips).
	NONE Loader = ""
)

func (l Loader) String() string {
	return string(l)
}
