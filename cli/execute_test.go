package cli

import (
	"bookledger/store"
	"testing"
)

func TestExecuteWrapper(t *testing.T) {
	defer resetCLI()
	// inject a fresh store so PersistentPreRunE will no-op
	catalog = store.NewInMemoryStore()
	rootCmd.SetArgs([]string{"product", "register", "--title", "ExecTest", "--price", "1", "--quantity", "1"})
	if _, err := captureOutput(Execute); err != nil {
		t.Fatalf("Execute wrapper failed: %v", err)
	}
}
