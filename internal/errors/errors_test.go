package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"dataset error", DatasetError("bad file", nil), CodeDataset},
		{"generation failure", GenerationFailure("model down", nil), CodeGeneration},
		{"plain error", stderrors.New("boom"), CodeInternal},
		{"wrapped app error keeps its code", Wrap(DatasetError("bad file", nil), "while reading"), CodeDataset},
		{"wrapped plain error becomes internal", Wrap(stderrors.New("boom"), "context"), CodeInternal},
		{"fmt-wrapped app error still unwraps", fmt.Errorf("outer: %w", GenerationFailure("inner", nil)), CodeGeneration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := stderrors.New("unexpected EOF")
	err := DatasetError("failed to parse CSV content", cause)

	if got := err.Error(); got != "failed to parse CSV content: unexpected EOF" {
		t.Errorf("Error() = %q", got)
	}
	if !stderrors.Is(err, cause) {
		t.Error("cause must be reachable through Unwrap")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("wrapping nil must stay nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("wrapping nil must stay nil")
	}
}

func TestIsGenerationFailure(t *testing.T) {
	if !IsGenerationFailure(GenerationFailure("x", nil)) {
		t.Error("generation failure not recognized")
	}
	if IsGenerationFailure(DatasetError("x", nil)) {
		t.Error("dataset error misclassified")
	}
	if IsGenerationFailure(stderrors.New("x")) {
		t.Error("plain error misclassified")
	}
}
