package bitwarden_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/vaultsync/internal/execx"
	"github.com/agentstation/vaultsync/internal/sources/bitwarden"
	pkgerrors "github.com/agentstation/vaultsync/pkg/errors"
)

func TestInstalled(t *testing.T) {
	t.Run("binary present", func(t *testing.T) {
		client := bitwarden.New(bitwarden.WithRunner(execx.NewFake()))
		assert.NoError(t, client.Installed())
	})

	t.Run("binary missing", func(t *testing.T) {
		fake := execx.NewFake()
		fake.Missing["bw"] = true
		client := bitwarden.New(bitwarden.WithRunner(fake))

		err := client.Installed()
		require.Error(t, err)
		assert.True(t, pkgerrors.IsCLINotFound(err))
	})
}

func TestStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("unlocked", func(t *testing.T) {
		fake := execx.NewFake().Stub("bw status", execx.Response{
			Stdout: `{"serverUrl":null,"lastSync":"2025-06-01T12:00:00.000Z","userEmail":"user@example.com","status":"unlocked"}`,
		})
		client := bitwarden.New(bitwarden.WithRunner(fake))

		assert.NoError(t, client.Status(ctx))
	})

	t.Run("locked points at unlock", func(t *testing.T) {
		fake := execx.NewFake().Stub("bw status", execx.Response{
			Stdout: `{"status":"locked"}`,
		})
		client := bitwarden.New(bitwarden.WithRunner(fake))

		err := client.Status(ctx)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsAuthenticationRequired(err))
		assert.Contains(t, err.Error(), "bw unlock")
	})

	t.Run("unauthenticated points at login", func(t *testing.T) {
		fake := execx.NewFake().Stub("bw status", execx.Response{
			Stdout: `{"status":"unauthenticated"}`,
		})
		client := bitwarden.New(bitwarden.WithRunner(fake))

		err := client.Status(ctx)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsAuthenticationRequired(err))
		assert.Contains(t, err.Error(), "bw login")
	})

	t.Run("unparseable status payload", func(t *testing.T) {
		fake := execx.NewFake().Stub("bw status", execx.Response{Stdout: "not json"})
		client := bitwarden.New(bitwarden.WithRunner(fake))

		err := client.Status(ctx)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsParseFailed(err))
	})

	t.Run("command failure is not authentication", func(t *testing.T) {
		fake := execx.NewFake().Stub("bw status", execx.Response{
			Stderr:   "some internal failure",
			ExitCode: 1,
		})
		client := bitwarden.New(bitwarden.WithRunner(fake))

		err := client.Status(ctx)
		require.Error(t, err)
		assert.False(t, pkgerrors.IsAuthenticationRequired(err))
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("maps login items", func(t *testing.T) {
		fake := execx.NewFake().Stub("bw list items", execx.Response{
			Stdout: `[
				{"type":1,"name":"Example","notes":"n1","login":{"username":"alice","password":"hunter2","uris":[{"uri":"https://example.com"},{"uri":"https://alt.example.com"}]}},
				{"type":2,"name":"Secure Note","notes":"body"},
				{"type":1,"name":"No URIs","notes":null,"login":{"username":"bob","password":"pw","uris":[]}}
			]`,
		})
		client := bitwarden.New(bitwarden.WithRunner(fake))

		entries, err := client.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, "Example", entries[0].Name)
		assert.Equal(t, "https://example.com", entries[0].URL)
		assert.Equal(t, "alice", entries[0].Username)
		assert.Equal(t, "hunter2", entries[0].Password)
		assert.Equal(t, "n1", entries[0].Notes)

		assert.Equal(t, "No URIs", entries[1].Name)
		assert.Empty(t, entries[1].URL)
		assert.Empty(t, entries[1].Notes)
	})

	t.Run("empty vault", func(t *testing.T) {
		fake := execx.NewFake().Stub("bw list items", execx.Response{Stdout: `[]`})
		client := bitwarden.New(bitwarden.WithRunner(fake))

		entries, err := client.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("login item without login object", func(t *testing.T) {
		fake := execx.NewFake().Stub("bw list items", execx.Response{
			Stdout: `[{"type":1,"name":"Bare","notes":"","login":null}]`,
		})
		client := bitwarden.New(bitwarden.WithRunner(fake))

		entries, err := client.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Bare", entries[0].Name)
		assert.Empty(t, entries[0].Username)
	})

	t.Run("locked session reads as authentication", func(t *testing.T) {
		fake := execx.NewFake().Stub("bw list items", execx.Response{
			Stderr:   "Vault is locked.",
			ExitCode: 1,
		})
		client := bitwarden.New(bitwarden.WithRunner(fake))

		_, err := client.List(ctx)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsAuthenticationRequired(err))
	})

	t.Run("other failures classify as export failures", func(t *testing.T) {
		fake := execx.NewFake().Stub("bw list items", execx.Response{
			Stderr:   "A sync is already in progress.",
			ExitCode: 1,
		})
		client := bitwarden.New(bitwarden.WithRunner(fake))

		_, err := client.List(ctx)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsExportFailed(err))
	})

	t.Run("bad json classifies as parse failure", func(t *testing.T) {
		fake := execx.NewFake().Stub("bw list items", execx.Response{Stdout: `{"not":"an array"`})
		client := bitwarden.New(bitwarden.WithRunner(fake))

		_, err := client.List(ctx)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsParseFailed(err))
		assert.False(t, pkgerrors.IsExportFailed(err))
	})

	t.Run("canceled context is not an export failure", func(t *testing.T) {
		fake := execx.NewFake().Stub("bw list items", execx.Response{Stdout: `[]`})
		client := bitwarden.New(bitwarden.WithRunner(fake))

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := client.List(canceled)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsCanceled(err))
		assert.False(t, pkgerrors.IsExportFailed(err))
	})

	t.Run("binary override changes the command", func(t *testing.T) {
		fake := execx.NewFake().Stub("bw-beta list items", execx.Response{Stdout: `[]`})
		client := bitwarden.New(
			bitwarden.WithRunner(fake),
			bitwarden.WithBinary("bw-beta"),
		)

		_, err := client.List(ctx)
		require.NoError(t, err)
		assert.True(t, fake.Called("bw-beta list items"))
	})
}
