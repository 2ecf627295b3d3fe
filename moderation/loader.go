package moderation

import (
	"bufio"
	"embed"
	"io/fs"
	"path"
	"strings"
)

//go:embed censored/*
var censoredFS embed.FS

// WordData is the merged censored vocabulary across all language files.
type WordData struct {
	Languages []string
	Words     []string
}

// LoadWords reads every file under censored/, one word per line, skipping
// blanks and '#' comments. The file name (without extension) is the
// language label.
func LoadWords() (WordData, error) {
	var data WordData
	seen := make(map[string]struct{})

	entries, err := fs.ReadDir(censoredFS, "censored")
	if err != nil {
		return WordData{}, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		lang := strings.TrimSuffix(name, path.Ext(name))
		data.Languages = append(data.Languages, lang)

		file, err := censoredFS.Open(path.Join("censored", name))
		if err != nil {
			return WordData{}, err
		}
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			word := strings.TrimSpace(scanner.Text())
			if word == "" || strings.HasPrefix(word, "#") {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			data.Words = append(data.Words, word)
		}
		closeErr := file.Close()
		if err := scanner.Err(); err != nil {
			return WordData{}, err
		}
		if closeErr != nil {
			return WordData{}, closeErr
		}
	}
	return data, nil
}
