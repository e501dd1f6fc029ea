//go:build !js && !wasm
// +build !js,!wasm

package drafting

import (
	"context"
	"fmt"
)

// callOpenRouter is a stub for non-WASM builds.
func (s *Service) callOpenRouter(_ context.Context, _, _ string) (string, error) {
	return "", fmt.Errorf("drafting: OpenRouter API calls require WASM environment")
}

// jsFetchWithAuth is a stub for non-WASM builds.
func (s *Service) jsFetchWithAuth(_, _, _ string) (string, error) {
	return "", fmt.Errorf("drafting: fetch requires WASM environment")
}
