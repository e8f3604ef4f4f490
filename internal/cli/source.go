package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/loam"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// Machine sources selectable with --source.
const (
	SourceFile    = "file"
	SourceRedis   = "redis"
	SourceLibrary = "library"
)

// SourceOptions selects where machine descriptions come from.
type SourceOptions struct {
	Source      string
	Dir         string
	RedisAddr   string
	RedisDB     int
	RedisPrefix string
	RedisTTL    time.Duration
}

// Open builds the loader for the configured source.
// The returned function releases it and is never nil.
func (o SourceOptions) Open() (ports.DefinitionLoader, func() error, error) {
	noop := func() error { return nil }

	switch o.Source {
	case SourceFile, "":
		return file.New(o.Dir), noop, nil
	case SourceRedis:
		var opts []redis.Option
		if o.RedisPrefix != "" {
			opts = append(opts, redis.WithPrefix(o.RedisPrefix))
		}
		if o.RedisTTL > 0 {
			opts = append(opts, redis.WithTTL(o.RedisTTL))
		}
		store := redis.New(o.RedisAddr, os.Getenv("TURING_REDIS_PASSWORD"), o.RedisDB, opts...)
		return store, store.Close, nil
	case SourceLibrary:
		loader, err := loam.Open(o.Dir)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open library: %w", err)
		}
		return loader, noop, nil
	}
	return nil, noop, fmt.Errorf("unknown source %q (want %s, %s or %s)", o.Source, SourceFile, SourceRedis, SourceLibrary)
}

// Resolve maps a command argument to a loader and a machine name.
// With the file source, an argument that looks like a path ("machines/swap.tm")
// is read from its own directory instead of --dir.
func (o SourceOptions) Resolve(arg string) (ports.DefinitionLoader, string, func() error, error) {
	if arg == "" {
		return nil, "", func() error { return nil }, fmt.Errorf("missing machine description")
	}
	if (o.Source == SourceFile || o.Source == "") && looksLikePath(arg) {
		return file.New(filepath.Dir(arg)), filepath.Base(arg), func() error { return nil }, nil
	}
	loader, closer, err := o.Open()
	return loader, arg, closer, err
}

func looksLikePath(arg string) bool {
	return strings.ContainsRune(arg, '/') ||
		strings.ContainsRune(arg, filepath.Separator) ||
		domain.TrimFormat(arg) != arg
}
