package service

const (
	// RelevanceFloor is the minimum cosine similarity a retrieved chunk needs
	// to count as usable evidence.
	RelevanceFloor = 0.2

	// ConfidenceFloor is the hard gate below which a generated answer is
	// replaced by the insufficient-information response.
	ConfidenceFloor = 0.3

	// MaxGenerationAttempts bounds generation calls per query: one attempt
	// plus one repair.
	MaxGenerationAttempts = 2

	// MaxExcerptChars bounds each excerpt included in a prompt.
	MaxExcerptChars = 1200

	DefaultTopK = 5
	MaxTopK     = 20

	MaxQuestionLength = 4000
)
