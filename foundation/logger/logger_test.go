package logger_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/ledger/foundation/logger"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestNew(t *testing.T) {
	t.Log("Given the need to write structured logs.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen logging to a file.", testID)
		{
			path := filepath.Join(t.TempDir(), "log.json")

			log, err := logger.New("TEST", path)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to construct a logger: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to construct a logger.", success, testID)

			log.Infow("startup", "status", "testing")
			log.Sync()

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to read the log: %v", failed, testID, err)
			}

			var entry map[string]any
			if err := json.Unmarshal(data, &entry); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould write json: %v", failed, testID, err)
			}

			if entry["service"] != "TEST" || entry["status"] != "testing" || entry["msg"] != "startup" {
				t.Fatalf("\t%s\tTest %d:\tShould carry the fields: %v", failed, testID, entry)
			}
			t.Logf("\t%s\tTest %d:\tShould carry the fields.", success, testID)
		}
	}
}
