package ingest

import "fmt"

// Chunk splits text into consecutive windows of size characters, advancing
// the start offset by size-overlap each step. Windows are measured in runes
// so a multi-byte character is never split across chunks and every chunk is
// valid UTF-8. The final chunk may be shorter than size. Empty text yields
// an empty slice.
//
// size <= overlap would make the advance step non-positive and loop forever,
// so it is rejected as a configuration error.
func Chunk(text string, size, overlap int) ([]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunk overlap cannot be negative, got %d", overlap)
	}
	if size <= overlap {
		return nil, fmt.Errorf("chunk size (%d) must be greater than overlap (%d)", size, overlap)
	}

	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	step := size - overlap
	chunks := make([]string, 0, (len(runes)+step-1)/step)
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks, nil
}
