package g2p

// PipelineBuilder resolves a path through a LanguageGraph and wires
// the Mappings along that path into a CompositeTransducer. Grounded
// on client.go's request-building: the teacher turned a bag of
// options into one outgoing call, the same shape this resolves
// (in_lang, out_lang) into one ready-to-run composite.
type PipelineBuilder struct {
	Graph    *LanguageGraph
	Mappings map[edgeKey]*Mapping
}

type edgeKey struct{ In, Out string }

// NewPipelineBuilder builds a PipelineBuilder over a graph and the set
// of mappings that back its edges. Every mapping must have an edge
// already recorded in graph via graph.AddEdge(m.InLang, m.OutLang).
func NewPipelineBuilder(graph *LanguageGraph, mappings []*Mapping) *PipelineBuilder {
	pb := &PipelineBuilder{Graph: graph, Mappings: make(map[edgeKey]*Mapping, len(mappings))}
	for _, m := range mappings {
		pb.Mappings[edgeKey{m.InLang, m.OutLang}] = m
	}
	return pb
}

// Make resolves the shortest path from in_lang to out_lang and wraps
// each hop's Mapping in a Transducer, composing them in path order.
// If in_lang == out_lang the returned composite is the identity
// pipeline (spec.md §4.7).
func (pb *PipelineBuilder) Make(inLang, outLang string) (*CompositeTransducer, error) {
	if inLang == outLang {
		if !pb.Graph.HasNode(inLang) {
			return nil, invalidLanguageCode(inLang)
		}
		return NewCompositeTransducer(), nil
	}

	path, err := pb.Graph.ShortestPath(inLang, outLang)
	if err != nil {
		return nil, err
	}

	transducers := make([]*Transducer, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		key := edgeKey{path[i], path[i+1]}
		m, ok := pb.Mappings[key]
		if !ok {
			return nil, &MappingMissingError{InLang: key.In, OutLang: key.Out}
		}
		transducers = append(transducers, NewTransducer(m))
	}
	return NewCompositeTransducer(transducers...), nil
}
