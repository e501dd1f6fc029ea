//go:build !js && !wasm
// +build !js,!wasm

package drafting

import (
	"context"
	"fmt"
)

// callGoogle is a stub for non-WASM builds.
func (s *Service) callGoogle(_ context.Context, _, _ string) (string, error) {
	return "", fmt.Errorf("drafting: Google API calls require WASM environment")
}

// callGoogleWithAttachment is a stub for non-WASM builds.
func (s *Service) callGoogleWithAttachment(_ context.Context, _, _ string, _ Attachment) (string, error) {
	return "", fmt.Errorf("drafting: Google API calls require WASM environment")
}

// jsFetch is a stub for non-WASM builds.
func (s *Service) jsFetch(_, _ string) (string, error) {
	return "", fmt.Errorf("drafting: fetch requires WASM environment")
}
