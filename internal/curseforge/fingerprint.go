package curseforge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	curseforgeFingerprint "github.com/meza/curseforge-fingerprint-go"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/packsmith/minecraft-pack-manager/internal/httpclient"
	"github.com/packsmith/minecraft-pack-manager/internal/perf"
)

type getFingerprintsRequest struct {
	Fingerprints []int `json:"fingerprints"`
}

type fingerprintMatch struct {
	ProjectId int  `json:"id"`
	File      File `json:"file"`
}

type fingerprintsMatchResult struct {
	ExactMatches          []fingerprintMatch `json:"exactMatches"`
	UnmatchedFingerprints json.RawMessage    `json:"unmatchedFingerprints"`
}

type getFingerprintsMatchesResponse struct {
	Data fingerprintsMatchResult `json:"data"`
}

// FingerprintResult pairs the files the API recognized with the fingerprints
// it could not place.
type FingerprintResult struct {
	Matches   []File
	Unmatched []int
}

type FingerprintApiError struct {
	Lookup []int
	Err    error
}

func (fingerprintError *FingerprintApiError) Error() string {
	return fmt.Sprintf("fingerprints %v cannot be matched due to an api error: %v", fingerprintError.Lookup, fingerprintError.Err)
}

func (fingerprintError *FingerprintApiError) Is(target error) bool {
	var t *FingerprintApiError
	if !errors.As(target, &t) {
		return false
	}
	return reflect.DeepEqual(t.Lookup, fingerprintError.Lookup) && errors.Is(t.Err, fingerprintError.Err)
}

func (fingerprintError *FingerprintApiError) Unwrap() error {
	return fingerprintError.Err
}

// FingerprintOfFile computes the CurseForge murmur2 fingerprint of a local
// jar. The library signals an unreadable file with a zero fingerprint, which
// would only ever produce useless lookups downstream.
func FingerprintOfFile(path string) (int, error) {
	fingerprint := curseforgeFingerprint.GetFingerprintFor(path)
	if fingerprint == 0 {
		return 0, errors.Errorf("no fingerprint for %s", path)
	}
	return int(fingerprint), nil
}

// GetFingerprintsMatches looks up files by their murmur2 fingerprints. The
// endpoint is scoped to Minecraft's game id.
func GetFingerprintsMatches(ctx context.Context, fingerprints []int, client httpclient.Doer) (result *FingerprintResult, returnErr error) {
	ctx, span := perf.StartSpan(ctx, "api.curseforge.fingerprints.match", perf.WithAttributes(attribute.Int("fingerprints_count", len(fingerprints))))
	defer span.End()

	url := fmt.Sprintf("%s/fingerprints/%d", GetBaseURL(), Minecraft)

	body, err := json.Marshal(getFingerprintsRequest{Fingerprints: fingerprints})
	if err != nil {
		return nil, err
	}
	timeoutCtx, cancel := httpclient.WithMetadataTimeout(ctx)
	defer cancel()
	request, err := http.NewRequestWithContext(timeoutCtx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	request.Header.Add("Content-Type", "application/json")

	response, err := client.Do(request)
	if err != nil {
		if httpclient.IsTimeoutError(err) {
			return nil, httpclient.WrapTimeoutError(err)
		}
		return nil, &FingerprintApiError{Lookup: fingerprints, Err: err}
	}
	defer func() {
		if closeErr := response.Body.Close(); closeErr != nil && returnErr == nil {
			returnErr = closeErr
		}
	}()

	if response.StatusCode != http.StatusOK {
		return nil, &FingerprintApiError{
			Lookup: fingerprints,
			Err:    errors.Errorf("unexpected status code: %d", response.StatusCode),
		}
	}

	var fingerprintsResponse getFingerprintsMatchesResponse
	err = json.NewDecoder(response.Body).Decode(&fingerprintsResponse)
	if err != nil {
		return nil, &FingerprintApiError{
			Lookup: fingerprints,
			Err:    errors.Wrap(err, "failed to decode response body"),
		}
	}

	result = &FingerprintResult{
		Matches:   make([]File, 0),
		Unmatched: make([]int, 0),
	}
	for _, item := range fingerprintsResponse.Data.ExactMatches {
		result.Matches = append(result.Matches, item.File)
	}

	unmatched, decodeErr := decodeUnmatchedFingerprints(fingerprintsResponse.Data.UnmatchedFingerprints)
	if decodeErr != nil {
		return nil, &FingerprintApiError{
			Lookup: fingerprints,
			Err:    errors.Wrap(decodeErr, "failed to decode unmatchedFingerprints"),
		}
	}
	result.Unmatched = append(result.Unmatched, unmatched...)

	return result, nil
}

// The API has shipped unmatchedFingerprints both as a plain list and as a
// map keyed by the fingerprint value. Accept either.
func decodeUnmatchedFingerprints(raw json.RawMessage) ([]int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var list []int
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var asMap map[string]bool
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return nil, errors.New("unrecognized unmatchedFingerprints shape")
	}

	keys := make([]int, 0, len(asMap))
	for key := range asMap {
		value, err := strconv.Atoi(key)
		if err != nil {
			return nil, errors.Wrapf(err, "non numeric fingerprint key %q", key)
		}
		keys = append(keys, value)
	}
	return keys, nil
}
