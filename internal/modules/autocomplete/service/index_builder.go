package service

import (
	"context"
	"net/url"
	"strings"

	"tvshell/internal/modules/autocomplete/domain"
	autocompletein "tvshell/internal/modules/autocomplete/port/in"
)

type DomainLoader func() ([]string, error)

type IndexBuilder struct {
	defaults DomainLoader
}

func NewIndexBuilder(defaults DomainLoader) autocompletein.IndexBuilder {
	return &IndexBuilder{defaults: defaults}
}

func (b *IndexBuilder) Build(ctx context.Context, customURLs []string) (*domain.Index, error) {
	var defaults []string
	if b.defaults != nil {
		list, err := b.defaults()
		if err != nil {
			return nil, err
		}
		defaults = list
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	custom := make([]string, 0, len(customURLs))
	for _, raw := range customURLs {
		if host := hostOf(raw); host != "" {
			custom = append(custom, host)
		}
	}
	return domain.NewIndex(defaults, custom), nil
}

func hostOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
