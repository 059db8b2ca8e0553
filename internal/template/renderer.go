// AngelaMos | 2026
// renderer.go

package template

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/docmailer/internal/config"
)

var ErrTemplateNotFound = errors.New("template not found")

const cacheKeyPrefix = "template:src:"

type Renderer struct {
	dir      string
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewRenderer(
	cfg config.TemplatesConfig,
	cache *redis.Client,
	logger *slog.Logger,
) *Renderer {
	return &Renderer{
		dir:      cfg.Dir,
		cache:    cache,
		cacheTTL: cfg.CacheTTL,
		logger:   logger,
	}
}

// Render loads the named template and substitutes placeholders literally.
// Fixed-vocabulary fields are applied first, caller extras after; within
// each group longer placeholder names are replaced before shorter ones so
// that ORDER_NUMBER never collides with ORDER_NUM.
func (r *Renderer) Render(
	ctx context.Context,
	name string,
	fields, extras map[string]string,
) (string, error) {
	source, err := r.loadSource(ctx, name)
	if err != nil {
		return "", err
	}

	html := substitute(source, fields)
	html = substitute(html, extras)

	return html, nil
}

func (r *Renderer) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read templates dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".html"))
	}

	sort.Strings(names)
	return names, nil
}

func (r *Renderer) loadSource(ctx context.Context, name string) (string, error) {
	if !validTemplateName(name) {
		return "", fmt.Errorf("load template %q: %w", name, ErrTemplateNotFound)
	}

	cacheKey := cacheKeyPrefix + name

	if r.cache != nil {
		cached, err := r.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("template cache read failed",
				"template", name,
				"error", err,
			)
		}
	}

	path := filepath.Join(r.dir, name+".html")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf(
				"load template %q: %w",
				name,
				ErrTemplateNotFound,
			)
		}
		return "", fmt.Errorf("load template %q: %w", name, err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, cacheKey, data, r.cacheTTL).Err(); err != nil {
			r.logger.Warn("template cache write failed",
				"template", name,
				"error", err,
			)
		}
	}

	return string(data), nil
}

func substitute(html string, values map[string]string) string {
	if len(values) == 0 {
		return html
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, key := range keys {
		html = strings.ReplaceAll(html, key, values[key])
	}

	return html
}

func validTemplateName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, "/\\.")
}
