package main

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/justestif/go-ytmusic/internal/config"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	want := []string{
		"search", "suggest", "song", "video", "lyrics", "artist", "artist-songs",
		"artist-albums", "album", "playlist", "playlist-videos", "playlist-groups",
		"home", "serve", "prune",
	}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestArgsValidated(t *testing.T) {
	root := newRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"video"})

	if err := root.Execute(); err == nil {
		t.Error("Execute() with missing argument error = nil, want error")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	for _, key := range []string{"YTMUSIC_GL", "YTMUSIC_PROXY", "REDIS_URL", "DATABASE_URL"} {
		original, ok := os.LookupEnv(key)
		t.Cleanup(func() {
			if ok {
				os.Setenv(key, original)
			} else {
				os.Unsetenv(key)
			}
		})
	}
	os.Setenv("YTMUSIC_GL", "US")
	os.Unsetenv("YTMUSIC_PROXY")
	os.Setenv("REDIS_URL", "redis://localhost:6379")
	os.Setenv("DATABASE_URL", "postgres://localhost/ytmusic")

	o := &rootOptions{gl: "JP", proxy: "http://u:p@proxy:3128", noCache: true, noStore: true}
	cfg, err := o.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.GL != "JP" {
		t.Errorf("GL = %q, want JP", cfg.GL)
	}
	if cfg.Proxy == nil || cfg.Proxy.Host != "proxy:3128" {
		t.Errorf("Proxy = %v", cfg.Proxy)
	}
	if cfg.RedisURL != "" || cfg.DatabaseURL != "" {
		t.Errorf("RedisURL/DatabaseURL = %q/%q, want both cleared", cfg.RedisURL, cfg.DatabaseURL)
	}

	o = &rootOptions{proxy: "http://proxy:3128"}
	if _, err := o.loadConfig(); !errors.Is(err, config.ErrInvalidProxy) {
		t.Errorf("loadConfig() error = %v, want ErrInvalidProxy", err)
	}
}
