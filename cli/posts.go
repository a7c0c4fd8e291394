package cli

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alwitt/goutils"
	"github.com/alwitt/scribe/auth"
	"github.com/alwitt/scribe/client"
	"github.com/alwitt/scribe/posts"
	"github.com/spf13/cobra"
)

// readSigner load a signer from a hex encoded ed25519 private key file
func readSigner(keyFile string) (*auth.Signer, error) {
	raw, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file '%s' [%w]", keyFile, err)
	}
	key, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("key file '%s' is not hex encoded [%w]", keyFile, err)
	}
	return auth.NewSigner(ed25519.PrivateKey(key))
}

// newPostClient post service client for the command line
func newPostClient(
	ctx context.Context, opts *RootOptions, timeout time.Duration,
) (client.Client, error) {
	return client.NewClient(ctx, client.ClientParams{
		BaseURL: opts.Server,
		Timeout: timeout,
		Retry: goutils.HTTPClientRetryConfig{
			MaxAttempts:  opts.Retries,
			InitWaitTime: time.Millisecond * 250,
			MaxWaitTime:  time.Second * 2,
		},
	})
}

// NewKeygenCommand generate a new author key pair
func NewKeygenCommand(_ *RootOptions) *cobra.Command {
	var keyFile string
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new author key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := auth.GenerateSigner(rand.Reader)
			if err != nil {
				return err
			}
			encoded := hex.EncodeToString(signer.PrivateKey())
			if err := os.WriteFile(keyFile, []byte(encoded+"\n"), 0o600); err != nil {
				return fmt.Errorf("failed to write key file '%s' [%w]", keyFile, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), signer.Principal())
			return err
		},
	}
	cmd.Flags().StringVar(&keyFile, "key", "author.key", "where to write the private key")
	return cmd
}

// NewPostCommand sign and submit a new post
func NewPostCommand(opts *RootOptions) *cobra.Command {
	var keyFile, topic, identity string
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "post <content>",
		Short: "Create a new post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := readSigner(keyFile)
			if err != nil {
				return err
			}
			if identity == "" {
				if identity, err = posts.NewIdentityGenerator(rand.Reader).Next(); err != nil {
					return err
				}
			}
			postClient, err := newPostClient(cmd.Context(), opts, timeout)
			if err != nil {
				return err
			}
			created, err := postClient.CreatePost(cmd.Context(), signer, identity, topic, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), created)
		},
	}
	cmd.Flags().StringVar(&keyFile, "key", "author.key", "author private key file")
	cmd.Flags().StringVar(&topic, "topic", "", "post topic")
	cmd.Flags().StringVar(&identity, "id", "", "post identity; generated when not given")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Second*10, "request timeout")
	return cmd
}

// NewGetCommand read back a post
func NewGetCommand(opts *RootOptions) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Read a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			postClient, err := newPostClient(cmd.Context(), opts, timeout)
			if err != nil {
				return err
			}
			post, err := postClient.GetPost(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), post)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", time.Second*10, "request timeout")
	return cmd
}
