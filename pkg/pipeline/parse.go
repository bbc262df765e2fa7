package pipeline

import (
	"strconv"
	"strings"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/topology"
	"github.com/matzehuels/netgraph/pkg/weights"
)

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// ParseNeuronID parses "layer:index".
func ParseNeuronID(s string) (topology.NeuronID, error) {
	layer, index, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return topology.NeuronID{}, errors.New(errors.ErrCodeInvalidInput, "neuron %q: want layer:index", s)
	}
	l, err1 := strconv.Atoi(layer)
	i, err2 := strconv.Atoi(index)
	if err1 != nil || err2 != nil || l < 0 || i < 0 {
		return topology.NeuronID{}, errors.New(errors.ErrCodeInvalidInput, "neuron %q: want non-negative layer:index", s)
	}
	return topology.NeuronID{Layer: l, Index: i}, nil
}

// BuildWeights returns the weight source described by opts.
func BuildWeights(t topology.Topology, opts Options) (weights.Source, error) {
	if opts.Weights != nil {
		return opts.Weights, nil
	}
	switch opts.WeightSource {
	case WeightsConstant:
		return weights.Constant(opts.WeightValue), nil
	case WeightsFile:
		return weights.LoadTableFile(opts.WeightFile, t)
	case WeightsRandom, "":
		return weights.NewRandom(opts.SeedOrDefault()), nil
	default:
		return nil, ValidateWeightSource(opts.WeightSource)
	}
}
