package e2e

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/link-portal-cli/internal/adapters/wallet/keypair"
	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/bnema/link-portal-cli/internal/testutil/fakeledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const abandonMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

var programID = domain.Identity{0xF0, 0x0D}

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	ledger := fakeledger.New(t, fakeledger.Options{ProgramID: programID})
	target := writeConfigFixture(t, home, ledger.URL())

	_, stderr, err := runLP(t, binaryPath, home, abandonMnemonic+"\n", "wallet", "import")
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runLP(t, binaryPath, home, "", "connect", "--yes")
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runLP(t, binaryPath, home, "", "init")
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runLP(t, binaryPath, home, "", "submit", "https://example.com/cat.gif")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runLP(t, binaryPath, home, "", "status")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "record: "+target.String())
	assert.Contains(t, stdout, "1. https://example.com/cat.gif by you")
	assert.Len(t, ledger.Entries(target), 1)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "lp-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/lp")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build lp binary: %s", string(output))
	return binaryPath
}

func runLP(t *testing.T, binaryPath, home, input string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = home
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"LP_PROGRAM_ID="+programID.String(),
		"LP_WALLET_PASSPHRASE=correct horse",
	)
	cmd.Stdin = strings.NewReader(input)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeConfigFixture(t *testing.T, home string, endpoint string) domain.Identity {
	t.Helper()

	configDir := filepath.Join(home, ".link-portal")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	target, err := keypair.Generate()
	require.NoError(t, err)
	keypairPath := filepath.Join(home, "keypair.json")
	require.NoError(t, target.Write(keypairPath))

	config := fmt.Sprintf(`[rpc]
url = %q
rate = 0

[target]
keypair = %q
`, endpoint, keypairPath)
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o644))

	return target.Identity()
}
