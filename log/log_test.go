package log

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetLevel(InfoLevel)

	testCases := []struct {
		level    string
		debug    bool
		info     bool
		errorLog bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"ERROR", false, false, true},
		{"disabled", false, false, false},
	}
	for i, tc := range testCases {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			buf.Reset()
			if !SetLevelByName(tc.level) {
				t.Fatalf("unknown level %s", tc.level)
			}
			Debug.Printf("debug %d", i)
			Info.Print("info")
			Error.Printf("error %d", i)

			out := buf.String()
			if strings.Contains(out, "debug") != tc.debug {
				t.Errorf("debug message printed: %v, expected %v", !tc.debug, tc.debug)
			}
			if strings.Contains(out, "msg=info") != tc.info {
				t.Errorf("info message printed: %v, expected %v", !tc.info, tc.info)
			}
			if strings.Contains(out, "msg=\"error") != tc.errorLog {
				t.Errorf("error message printed: %v, expected %v", !tc.errorLog, tc.errorLog)
			}
		})
	}

	if SetLevelByName("verbose") {
		t.Error("unknown level accepted")
	}
}
