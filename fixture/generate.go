// Package fixture synthesizes example values for schema nodes and keeps the
// bookkeeping that lets generated examples refer back to them.
//
// Values come from the schema when it declares an example, a default or an
// enum, and from kind defaults otherwise. In random mode every value is
// derived from a hash of its structural path, so the same path always yields
// the same value and different paths yield different strings.
//
// A Session ties accessors to the "given" steps of a scenario. Reading a
// value through a session registers it under a placeholder key such as
// WIDGET_DATA_ID; the session then implements literal.Replacements so later
// renders refer to the captured variable instead of repeating the literal.
package fixture

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/erraggy/oasfixture/schema"
	"github.com/erraggy/oasfixture/value"
)

// FrozenTime is the clock used for generated dates and relative time
// expressions, so repeated generation is reproducible.
var FrozenTime = time.Date(2021, 11, 11, 11, 11, 11, 111111000, time.UTC)

// randomRange bounds generated numbers.
const randomRange = 32000

// fixtureNamespace scopes the name-based UUIDs of generated strings.
var fixtureNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/erraggy/oasfixture"))

// GenerateOptions controls value synthesis.
type GenerateOptions struct {
	// Random ignores examples and defaults and derives values from a hash.
	Random bool
	// Prefix replaces the path as the hash seed, giving a fresh value for a
	// path that collided with another one.
	Prefix string
}

// Generate returns a value for node at the structural path.
func Generate(node *schema.Node, path string, opts GenerateOptions) value.Value {
	return generate(node, path, opts, 0)
}

// maxDepth stops recursive schemas.
const maxDepth = 8

func generate(node *schema.Node, path string, opts GenerateOptions, depth int) value.Value {
	if node == nil {
		node = &schema.Node{Kind: schema.KindAny}
	}
	if !opts.Random {
		switch {
		case node.Example != nil:
			return node.Example
		case node.Default != nil:
			return node.Default
		case node.HasEnum():
			return node.Enum[0]
		}
	}

	seed := opts.Prefix
	if seed == "" {
		seed = path
	}
	if node.HasEnum() {
		return node.Enum[newRand(seed).IntN(len(node.Enum))]
	}

	switch node.Kind {
	case schema.KindString:
		return generateString(node, seed, opts.Random)
	case schema.KindInteger:
		if opts.Random {
			return value.Int(newRand(seed).Int64N(randomRange))
		}
		return value.Int(1)
	case schema.KindNumber:
		if opts.Random {
			return value.Float(math.Round(newRand(seed).Float64()*randomRange*100) / 100)
		}
		return value.Float(1.0)
	case schema.KindBoolean:
		if opts.Random {
			return value.Bool(newRand(seed).IntN(2) == 1)
		}
		return value.Bool(true)
	case schema.KindArray:
		if depth >= maxDepth {
			return value.Sequence{}
		}
		return value.Sequence{generate(node.Items, path+"[0]", childOptions(opts, "[0]"), depth+1)}
	case schema.KindObject:
		out := value.NewMapping()
		if depth >= maxDepth {
			return out
		}
		for _, p := range node.Properties {
			out.Set(p.Name, generate(p.Schema, path+"."+p.Name, childOptions(opts, "."+p.Name), depth+1))
		}
		return out
	case schema.KindOneOf:
		if len(node.Alternatives) > 0 && depth < maxDepth {
			return generate(node.Alternatives[0], path, opts, depth+1)
		}
		return value.Null{}
	default:
		return generateString(&schema.Node{Kind: schema.KindString}, seed, opts.Random)
	}
}

func generateString(node *schema.Node, seed string, random bool) value.Value {
	switch node.Format {
	case schema.FormatDate, schema.FormatDateTime:
		t := FrozenTime
		if random {
			t = t.Add(time.Duration(newRand(seed).IntN(365*24)) * time.Hour)
		}
		if node.Format == schema.FormatDate {
			return value.String(t.Format(time.DateOnly))
		}
		return value.String(t.Format(time.RFC3339Nano))
	}
	if random {
		return value.String(uuid.NewSHA1(fixtureNamespace, []byte(seed)).String())
	}
	return value.String("string")
}

func childOptions(opts GenerateOptions, suffix string) GenerateOptions {
	if opts.Prefix != "" {
		opts.Prefix += suffix
	}
	return opts
}

// newRand returns a PCG stream seeded from the SHA-256 of seed.
func newRand(seed string) *rand.Rand {
	sum := sha256.Sum256([]byte(seed))
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(sum[:8]), binary.LittleEndian.Uint64(sum[8:16])))
}
