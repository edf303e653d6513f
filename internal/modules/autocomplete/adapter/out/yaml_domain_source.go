package out

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed domains.yaml
var domainsYAML []byte

type domainFile struct {
	Domains []string `yaml:"domains"`
}

// DefaultDomains decodes the embedded top-site list.
func DefaultDomains() ([]string, error) {
	return ParseDomains(domainsYAML)
}

func ParseDomains(raw []byte) ([]string, error) {
	var f domainFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode domain list: %w", err)
	}
	return f.Domains, nil
}
