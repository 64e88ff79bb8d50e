package g2p

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Registry bundles an immutable set of compiled Mappings with the
// LanguageGraph and PipelineBuilder derived from them, plus a cache of
// Tokenizers keyed by the hops they were built from. A Registry is
// built once and never mutated in place; WatchConfig reloads build a
// brand new Registry and swap it in atomically (spec.md §9's redesign
// away from the teacher's process-wide mutable manager).
//
// Grounded on docker.go's PyThaiNLPManager: the same functional-options
// construction, a mutex-guarded lazy cache (here, of Tokenizers), and
// package-level singleton convenience functions, retargeted from supervising a
// sidecar container to supervising a compiled mapping set.
type Registry struct {
	mappings []*Mapping
	graph    *LanguageGraph
	builder  *PipelineBuilder

	tokMu    sync.Mutex
	tokCache map[string]*Tokenizer
}

// RegistryOption configures a Registry at construction time.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	mappings []*Mapping
}

// WithMappings supplies the compiled-or-compilable Mapping set a
// Registry is built from. Required; NewRegistry fails without it.
func WithMappings(mappings ...*Mapping) RegistryOption {
	return func(c *registryConfig) { c.mappings = append(c.mappings, mappings...) }
}

// NewRegistry compiles every supplied mapping, builds the
// LanguageGraph from their (InLang, OutLang) edges, and constructs a
// PipelineBuilder over the result. The returned Registry is immutable.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	cfg := &registryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if len(cfg.mappings) == 0 {
		return nil, fmt.Errorf("g2p: registry requires at least one mapping")
	}

	graph := NewLanguageGraph()
	for _, m := range cfg.mappings {
		if err := m.Compile(); err != nil {
			return nil, err
		}
		graph.AddEdge(m.InLang, m.OutLang)
	}

	return &Registry{
		mappings: cfg.mappings,
		graph:    graph,
		builder:  NewPipelineBuilder(graph, cfg.mappings),
		tokCache: make(map[string]*Tokenizer),
	}, nil
}

// Graph exposes the Registry's read-only LanguageGraph.
func (r *Registry) Graph() *LanguageGraph { return r.graph }

// Mappings exposes the Registry's immutable mapping set.
func (r *Registry) Mappings() []*Mapping {
	out := make([]*Mapping, len(r.mappings))
	copy(out, r.mappings)
	return out
}

// mappingByEdge returns the single mapping for an exact (in, out) hop,
// or ErrMappingMissing.
func (r *Registry) mappingByEdge(in, out string) (*Mapping, error) {
	for _, m := range r.mappings {
		if m.InLang == in && m.OutLang == out {
			return m, nil
		}
	}
	return nil, &MappingMissingError{InLang: in, OutLang: out}
}

// tokenizerFor returns (building and caching on first use) the
// Tokenizer that should drive segmentation for a conversion rooted at
// tokLang, following the two-hop rule of spec.md §4.8. This is the
// TokenizerCache spec.md §9 calls for: explicit, owned by the
// Registry, pure and deterministic lookups keyed by the root language.
func (r *Registry) tokenizerFor(tokLang string) (*Tokenizer, error) {
	r.tokMu.Lock()
	defer r.tokMu.Unlock()
	if tk, ok := r.tokCache[tokLang]; ok {
		return tk, nil
	}

	var hops []*Mapping
	for _, m := range r.mappings {
		if m.InLang == tokLang {
			hops = append(hops, m)
			break
		}
	}
	if len(hops) == 0 {
		return nil, invalidLanguageCode(tokLang)
	}
	if hops[0].InventoryKind() == KindOrthography {
		for _, m := range r.mappings {
			if m.InLang == hops[0].OutLang {
				hops = append(hops, m)
				break
			}
		}
	}

	tk, err := NewTokenizer(hops...)
	if err != nil {
		return nil, err
	}
	r.tokCache[tokLang] = tk
	return tk, nil
}

// ConvertOptions configures a Registry.Convert call.
type ConvertOptions struct {
	// Tokenize splits text into word/non-word segments before
	// conversion. Defaults to true; non-word segments (punctuation,
	// whitespace) pass through verbatim.
	Tokenize bool
	// TokLang overrides which inventory drives tokenization; defaults
	// to InLang.
	TokLang string
	// Debugger records a per-rule application trace on every word
	// token's TokenResult.Trace, for the CLI's --debugger flag.
	Debugger bool
}

// ConvertOption mutates ConvertOptions.
type ConvertOption func(*ConvertOptions)

func WithTokenize(v bool) ConvertOption     { return func(o *ConvertOptions) { o.Tokenize = v } }
func WithTokLang(lang string) ConvertOption { return func(o *ConvertOptions) { o.TokLang = lang } }
func WithDebugger(v bool) ConvertOption     { return func(o *ConvertOptions) { o.Debugger = v } }

// TokenResult pairs one Tokenizer segment with the conversion graph
// produced for it (nil for non-word segments, which pass through
// unconverted). Shaped after spec.md §6's POST /convert response —
// unimplemented here since HTTP is a collaborator concern, but the
// per-token/per-conversion shape is this engine's actual contract.
type TokenResult struct {
	Segment Segment
	Graph   *TransductionGraph
	// Trace holds one []RuleApplication per tier, populated only when
	// ConvertOptions.Debugger is set.
	Trace [][]RuleApplication
}

// ConversionResult is the full per-token result of a Convert call.
type ConversionResult struct {
	Tokens []TokenResult
}

// Output concatenates every token's converted (or passed-through)
// text back into a single string.
func (c ConversionResult) Output() string {
	var b []byte
	for _, t := range c.Tokens {
		if t.Graph != nil {
			b = append(b, t.Graph.OutputString()...)
		} else {
			b = append(b, t.Segment.Text...)
		}
	}
	return string(b)
}

// Convert resolves a pipeline from inLang to outLang and applies it to
// text, optionally tokenizing first.
func (r *Registry) Convert(inLang, outLang, text string, opts ...ConvertOption) (ConversionResult, error) {
	cfg := ConvertOptions{Tokenize: true, TokLang: inLang}
	for _, opt := range opts {
		opt(&cfg)
	}

	composite, err := r.builder.Make(inLang, outLang)
	if err != nil {
		return ConversionResult{}, err
	}

	var segments []Segment
	if cfg.Tokenize {
		tk, err := r.tokenizerFor(cfg.TokLang)
		if err != nil {
			return ConversionResult{}, err
		}
		segments = tk.Tokenize(text)
	} else {
		segments = []Segment{{Text: text, IsWord: true}}
	}

	tokens := make([]TokenResult, 0, len(segments))
	for _, seg := range segments {
		if !seg.IsWord {
			tokens = append(tokens, TokenResult{Segment: seg})
			continue
		}
		if cfg.Debugger {
			graph, trace, err := composite.ApplyTraced(seg.Text)
			if err != nil {
				return ConversionResult{}, err
			}
			g := graph
			tokens = append(tokens, TokenResult{Segment: seg, Graph: &g, Trace: trace})
			continue
		}
		graph, err := composite.Apply(seg.Text)
		if err != nil {
			return ConversionResult{}, err
		}
		g := graph
		tokens = append(tokens, TokenResult{Segment: seg, Graph: &g})
	}
	return ConversionResult{Tokens: tokens}, nil
}

// CheckOutput checks a converted string against the declared output
// inventory of the final hop from inLang to outLang (the CLI's --check
// flag), returning the distinct unrecognized substrings found, if any.
// Characters in the Unicode Letter, Number or Mark categories count as
// recognized even when they are not in the inventory; only runs of
// other characters outside the inventory are reported.
func (r *Registry) CheckOutput(inLang, outLang, output string) ([]string, error) {
	path, err := r.graph.ShortestPath(inLang, outLang)
	if err != nil {
		return nil, err
	}
	if len(path) < 2 {
		return nil, nil
	}
	last := path[len(path)-2]
	m, err := r.mappingByEdge(last, outLang)
	if err != nil {
		return nil, err
	}
	inv := outputInventory(m)
	if len(inv) == 0 {
		return nil, nil
	}
	tk, err := NewTokenizer(invAsMapping(m, inv))
	if err != nil {
		return nil, err
	}
	var unknown []string
	seen := map[string]bool{}
	for _, seg := range tk.Tokenize(output) {
		if seg.IsWord {
			continue
		}
		if !seen[seg.Text] {
			seen[seg.Text] = true
			unknown = append(unknown, seg.Text)
		}
	}
	return unknown, nil
}

// outputInventory collects the distinct literal output graphemes of a
// compiled mapping's rules.
func outputInventory(m *Mapping) []string {
	seen := map[string]bool{}
	var out []string
	for i := range m.Rules {
		s := m.Rules[i].strippedOut
		if s == "" || !isLiteralPattern(s) || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// invAsMapping builds a throwaway single-purpose mapping whose input
// inventory is inv, letting CheckOutput reuse the Tokenizer's literal
// matching machinery instead of duplicating it.
func invAsMapping(m *Mapping, inv []string) *Mapping {
	rules := make([]Rule, len(inv))
	for i, tok := range inv {
		rules[i] = Rule{Input: tok, Output: tok}
	}
	check := NewMapping(m.OutLang, m.OutLang, rules).Apply(WithAsIs(true))
	return check
}

// WatchConfig watches a directory for changes and rebuilds the
// Registry from scratch on every write, create, remove or rename
// event, storing the freshly built Registry in target. Rebuilding is the caller's loader's job
// (file-format parsing is out of scope for this engine; see
// config.go's narrow JSON loader for the CLI's --config flag);
// WatchConfig only owns the atomic swap-on-change contract spec.md §5
// and §9 require. Returns a stop function.
func WatchConfig(ctx context.Context, dir string, load func() ([]*Mapping, error), target *atomic.Pointer[Registry]) (stop func() error, err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("g2p: failed to start config watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("g2p: failed to watch %s: %w", dir, err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				mappings, err := load()
				if err != nil {
					Logger.Error().Err(err).Msg("g2p: config reload failed, keeping previous registry")
					continue
				}
				reg, err := NewRegistry(WithMappings(mappings...))
				if err != nil {
					Logger.Error().Err(err).Msg("g2p: config reload produced an invalid registry, keeping previous one")
					continue
				}
				target.Store(reg)
				Logger.Info().Str("dir", dir).Msg("g2p: registry reloaded")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				Logger.Error().Err(err).Msg("g2p: config watcher error")
			}
		}
	}()

	return watcher.Close, nil
}

// defaultRegistry is the package-level singleton used by the
// convenience functions below, built lazily from the built-in
// demonstration mapping set (see builtin_mappings.go).
var (
	defaultRegistryMu sync.Mutex
	defaultRegistry   *Registry
)

func getOrCreateDefaultRegistry() (*Registry, error) {
	defaultRegistryMu.Lock()
	defer defaultRegistryMu.Unlock()
	if defaultRegistry != nil {
		return defaultRegistry, nil
	}
	mappings, err := BuiltinMappings()
	if err != nil {
		return nil, err
	}
	reg, err := NewRegistry(WithMappings(mappings...))
	if err != nil {
		return nil, err
	}
	defaultRegistry = reg
	return reg, nil
}

// Convert is the package-level convenience wrapper over the built-in
// demonstration Registry, mirroring the teacher's package-level
// Tokenize/Romanize/Transliterate functions that delegated to a
// lazily constructed singleton manager.
func Convert(inLang, outLang, text string, opts ...ConvertOption) (ConversionResult, error) {
	reg, err := getOrCreateDefaultRegistry()
	if err != nil {
		return ConversionResult{}, err
	}
	return reg.Convert(inLang, outLang, text, opts...)
}
