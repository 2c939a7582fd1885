package bouquet

import (
	"encoding/base64"
	"testing"
)

func encodeRaw(t *testing.T, raw string) string {
	t.Helper()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}
