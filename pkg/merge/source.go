package merge

// Source identifies one provider of partial configuration data and the strength
// of its claim. It is constructed by the caller per source and consumed once by
// Merge.
type Source struct {
	// Name identifies the source in explanations (e.g. "defaults", "env", "cli").
	Name string

	// Precedence is the source's priority. Higher value wins; equal precedence
	// falls back to first-registered-wins.
	Precedence int

	// Reason optionally justifies the source's values in explanations.
	Reason string

	// Location optionally identifies where the source's data originated.
	Location string
}

// Input pairs a partial configuration object with its source metadata. The
// values map is a flat associative structure; nested maps are treated as opaque
// leaf values unless the caller pre-flattened them (the extends resolver does,
// the plain builder path does not). Created by the adapter/builder layer and
// consumed exactly once by Merge.
type Input struct {
	Source Source
	Values map[string]any
}
