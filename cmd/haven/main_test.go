package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/haven/internal/config"
	"github.com/PabloGalante/haven/internal/domain"
)

func TestOpenStoresMemory(t *testing.T) {
	st, err := openStores(context.Background(), config.StorageConfig{Backend: config.StorageMemory})
	require.NoError(t, err)
	defer st.close()

	assert.NotNil(t, st.sessions)
	assert.NotNil(t, st.messages)
}

func TestOpenStoresSQLite(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "haven.db")

	st, err := openStores(ctx, config.StorageConfig{Backend: config.StorageSQLite, DSN: dsn})
	require.NoError(t, err)
	defer st.close()

	_, err = st.sessions.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestBuildCoreDegradesToLexicon(t *testing.T) {
	c := config.Default()
	c.Sentiment.ModelPath = filepath.Join(t.TempDir(), "absent.json")

	app, err := buildCore(context.Background(), c)
	require.NoError(t, err)

	assert.True(t, app.status.Degraded)
	assert.EqualValues(t, "lexicon", app.status.Active)
	assert.NotEmpty(t, app.dispatcher.Respond(context.Background(), "hello"))
}

func TestClassifyCommand(t *testing.T) {
	t.Setenv("HAVEN_SENTIMENT_BACKEND", "lexicon")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"classify", "I", "am", "so", "happy", "today"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "backend:  lexicon")
	assert.Contains(t, out.String(), "category: positive")
	assert.Contains(t, out.String(), "score:    0.50")
}

func TestChatCommandReadsCommandInput(t *testing.T) {
	t.Setenv("HAVEN_SENTIMENT_BACKEND", "lexicon")

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader("hello\nEXIT\n"))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"chat"})
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	got := out.String()
	assert.Contains(t, got, "Chatbot: Hi there! How are you feeling today?\n")
	assert.True(t, strings.HasSuffix(got, "Thanks for chatting! Remember, it's okay to ask for help.\n"), got)
}
