// Package topology defines the shape of a feed-forward network as drawn by
// netgraph: an ordered, immutable list of per-layer neuron counts.
//
// # Identities
//
// Neurons and connections are identified by value:
//
//   - [NeuronID] is (layer, index within layer)
//   - [ConnectionID] is (source layer, source index, destination index); the
//     destination always lives in layer+1
//
// Layers are fully connected to the next layer and to nothing else, so the
// set of connections is a pure function of the topology. [Topology.Connections]
// enumerates it in a stable order (layer, then source, then destination).
//
// # Construction
//
//	t, err := topology.New(3, 6, 10, 8, 4, 2)
//	t, err := topology.Parse("3,6,10,8,4,2")
//
// Both fail with an INVALID_TOPOLOGY error for an empty list or any count
// below one.
package topology
