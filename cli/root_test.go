package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alwitt/scribe/api"
	"github.com/alwitt/scribe/auth"
	"github.com/alwitt/scribe/models"
	"github.com/alwitt/scribe/posts"
	"github.com/alwitt/scribe/store"
	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, cmdName := range []string{"serve", "migrate", "keygen", "post", "get"} {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}

	serverFlag := cmd.PersistentFlags().Lookup("server")
	require.NotNil(t, serverFlag)
	assert.Equal(t, "http://127.0.0.1:8080", serverFlag.DefValue)
}

// runCommand execute the root command with the arguments, returning its output
func runCommand(t *testing.T, args ...string) (string, error) {
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestKeygenPostGet(t *testing.T) {
	log.SetLevel(log.DebugLevel)

	records, err := store.NewMemoryStore()
	require.NoError(t, err)
	verifier, err := auth.NewVerifier(auth.VerifierParams{MaxTokenAge: time.Minute})
	require.NoError(t, err)
	handler, err := posts.NewHandler(records, verifier, nil)
	require.NoError(t, err)
	server := httptest.NewServer(api.NewPostsAPI(handler).Router())
	defer server.Close()

	keyFile := filepath.Join(t.TempDir(), "author.key")

	out, err := runCommand(t, "keygen", "--key", keyFile)
	require.NoError(t, err)
	principal := strings.TrimSpace(out)

	signer, err := readSigner(keyFile)
	require.NoError(t, err)
	assert.Equal(t, principal, signer.Principal().String())

	out, err = runCommand(
		t, "post", "--server", server.URL, "--key", keyFile, "--topic", "veganism", "Yay Tofu!",
	)
	require.NoError(t, err)
	var created models.Post
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, principal, created.Author)
	assert.True(t, models.IsValidPostIdentity(created.ID))

	out, err = runCommand(t, "get", "--server", server.URL, created.ID)
	require.NoError(t, err)
	var fetched models.Post
	require.NoError(t, json.Unmarshal([]byte(out), &fetched))
	assert.Equal(t, created, fetched)

	// Reusing the identity collides
	_, err = runCommand(
		t, "post", "--server", server.URL, "--key", keyFile, "--id", created.ID, "gm",
	)
	assert.ErrorIs(t, err, models.ErrIdentityCollision)
}

func TestReadSignerRejectsBadKeys(t *testing.T) {
	dir := t.TempDir()

	notHex := filepath.Join(dir, "not-hex.key")
	require.NoError(t, os.WriteFile(notHex, []byte("zz"), 0o600))
	_, err := readSigner(notHex)
	assert.Error(t, err)

	short := filepath.Join(dir, "short.key")
	require.NoError(t, os.WriteFile(short, []byte("abcd"), 0o600))
	_, err = readSigner(short)
	assert.Error(t, err)

	_, err = readSigner(filepath.Join(dir, "missing.key"))
	assert.Error(t, err)
}
