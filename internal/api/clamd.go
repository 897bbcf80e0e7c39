package api

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dutchcoders/go-clamd"
)

// scanWithClamd streams an upload through clamd. An empty address disables
// scanning (local development).
func scanWithClamd(addr string, data []byte) error {
	if strings.TrimSpace(addr) == "" {
		return nil
	}

	clamdClient := clamd.NewClamd(addr)
	abortChan := make(chan bool)
	scanChan, err := clamdClient.ScanStream(bytes.NewReader(data), abortChan)
	if err != nil {
		return fmt.Errorf("scan stream: %w", err)
	}
	defer close(abortChan)

	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			return fmt.Errorf("scanner verdict %s", result.Status)
		}
	}
	return nil
}
