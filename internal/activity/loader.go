package activity

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"nurture/internal/milestone/models"
)

var (
	//go:embed data/activities.yaml
	defaultActivities []byte

	//go:embed data/recommendations.yaml
	defaultRecommendations []byte
)

// DecodeBuckets parses a nested domain -> subdomain -> [activities] mapping
// (YAML or JSON). Mapping order is preserved, which is why the document is
// walked as a yaml.Node instead of decoded into Go maps.
func DecodeBuckets(data []byte) ([]Bucket, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("decode activities: empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("decode activities: line %d: expected a mapping of domains", root.Line)
	}

	var buckets []Bucket
	for i := 0; i+1 < len(root.Content); i += 2 {
		domainKey, subs := root.Content[i], root.Content[i+1]
		if subs.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("decode activities: line %d: domain %q must map subdomains to lists", subs.Line, domainKey.Value)
		}
		for j := 0; j+1 < len(subs.Content); j += 2 {
			subKey, list := subs.Content[j], subs.Content[j+1]
			var acts []string
			if err := list.Decode(&acts); err != nil {
				return nil, fmt.Errorf("decode activities: %s/%s: %w", domainKey.Value, subKey.Value, err)
			}
			buckets = append(buckets, Bucket{
				Domain:     models.Domain(domainKey.Value),
				Subdomain:  subKey.Value,
				Activities: acts,
			})
		}
	}
	return buckets, nil
}

// LoadCatalog reads buckets from path, or the embedded defaults when path is empty.
func LoadCatalog(ctx context.Context, path string) (*Catalog, error) {
	data, err := readOrDefault(ctx, path, defaultActivities)
	if err != nil {
		return nil, err
	}
	buckets, err := DecodeBuckets(data)
	if err != nil {
		return nil, err
	}
	return NewCatalog(buckets)
}

// DecodeRecords parses a list of recommendation records and rejects entries
// with an inverted age range, a negative age, no domain or no text.
func DecodeRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	var problems []string
	for i, r := range records {
		switch {
		case strings.TrimSpace(string(r.Domain)) == "":
			problems = append(problems, fmt.Sprintf("record %d: domain is required", i))
		case r.Domain != models.DomainGeneral && !r.Domain.IsValid():
			problems = append(problems, fmt.Sprintf("record %d: unknown domain %q", i, r.Domain))
		}
		if r.MinAge < 0 || r.MinAge > r.MaxAge {
			problems = append(problems, fmt.Sprintf("record %d: invalid age range %d-%d", i, r.MinAge, r.MaxAge))
		}
		if strings.TrimSpace(r.Text) == "" {
			problems = append(problems, fmt.Sprintf("record %d: text is required", i))
		}
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("decode recommendations: %s", strings.Join(problems, "; "))
	}
	return records, nil
}

// LoadRecords reads recommendation records from path, or the embedded
// defaults when path is empty.
func LoadRecords(ctx context.Context, path string) ([]Record, error) {
	data, err := readOrDefault(ctx, path, defaultRecommendations)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(data)
}

func readOrDefault(ctx context.Context, path string, def []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == "" {
		return def, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
