package solr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescriptor_Validate(t *testing.T) {
	tests := []struct {
		name       string
		descriptor Descriptor
		errorMsg   string
	}{
		{
			name:       "collection only",
			descriptor: Descriptor{Collection: "people"},
		},
		{
			name: "complete descriptor",
			descriptor: Descriptor{
				Collection:    "people",
				Fields:        []FieldMapping{{Output: "name", Remote: "name"}},
				FilterQueries: []string{"age > 30"},
				Sorts:         []string{"name asc"},
				Limit:         "10",
			},
		},
		{
			name:       "missing collection",
			descriptor: Descriptor{},
			errorMsg:   "descriptor has no collection",
		},
		{
			name: "incomplete field mapping",
			descriptor: Descriptor{
				Collection: "people",
				Fields:     []FieldMapping{{Output: "name"}},
			},
			errorMsg: "incomplete field mapping",
		},
		{
			name: "non-numeric limit",
			descriptor: Descriptor{
				Collection: "people",
				Limit:      "ten",
			},
			errorMsg: `limit "ten"`,
		},
		{
			name: "negative limit",
			descriptor: Descriptor{
				Collection: "people",
				Limit:      "-1",
			},
			errorMsg: `limit "-1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.descriptor.Validate()
			if tt.errorMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.errorMsg)
		})
	}
}

func TestDescriptor_Fingerprint(t *testing.T) {
	base := func() Descriptor {
		return Descriptor{
			Collection:    "people",
			Fields:        []FieldMapping{{Output: "name", Remote: "name"}},
			FilterQueries: []string{"age > 30"},
			Sorts:         []string{"name asc"},
			Limit:         "10",
			Buckets:       []string{"name"},
			Metrics:       []string{"count(*)"},
		}
	}

	t.Run("equal descriptors have equal fingerprints", func(t *testing.T) {
		require.Equal(t, base().Fingerprint(), base().Fingerprint())
	})

	t.Run("any change changes the fingerprint", func(t *testing.T) {
		fingerprints := map[uint64]string{base().Fingerprint(): "base"}

		mutations := map[string]func(*Descriptor){
			"collection": func(d *Descriptor) { d.Collection = "people_v2" },
			"fields":     func(d *Descriptor) { d.Fields[0].Remote = "full_name" },
			"filters":    func(d *Descriptor) { d.FilterQueries = append(d.FilterQueries, "age < 60") },
			"sorts":      func(d *Descriptor) { d.Sorts[0] = "name desc" },
			"limit":      func(d *Descriptor) { d.Limit = "11" },
			"buckets":    func(d *Descriptor) { d.Buckets = nil },
			"metrics":    func(d *Descriptor) { d.Metrics[0] = "count(name)" },
		}
		for name, mutate := range mutations {
			d := base()
			mutate(&d)
			fp := d.Fingerprint()
			require.NotContains(t, fingerprints, fp, "mutation %q collides with %q", name, fingerprints[fp])
			fingerprints[fp] = name
		}
	})

	t.Run("section boundaries are part of the hash", func(t *testing.T) {
		a := Descriptor{Collection: "people", FilterQueries: []string{"a", "b"}}
		b := Descriptor{Collection: "people", FilterQueries: []string{"a"}, Sorts: []string{"b"}}
		require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})
}
