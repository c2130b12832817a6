package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrUnrepresentableName the file name does not yield a usable canonical name
	ErrUnrepresentableName = errors.New("file name is not a representable canonical name")
	// ErrInvalidEncoding the alias file is not valid UTF-8 text
	ErrInvalidEncoding = errors.New("alias file is not valid UTF-8")
)

// AliasesResult outcome of loading an aliases directory
type AliasesResult struct {
	Aliases         map[string][]string `json:"aliases"` // canonical name -> aliases, file order
	FailedSources   []string            `json:"failed_sources"`
	Overwritten     []string            `json:"overwritten"` // files shadowed by a later file with the same stem
	DirectoryFailed bool                `json:"directory_failed"`
}

// Status see Status
func (r *AliasesResult) Status() Status {
	return statusOf(r.DirectoryFailed, len(r.FailedSources))
}

// AliasLoader loads one alias file per canonical player
type AliasLoader struct {
	concurrency int
	logger      *logrus.Logger
}

// NewAliasLoader logger may be nil
func NewAliasLoader(concurrency int, logger *logrus.Logger) *AliasLoader {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &AliasLoader{concurrency: concurrency, logger: orDiscard(logger)}
}

// LoadAliases loads dir with default settings
func LoadAliases(dir string) *AliasesResult {
	return NewAliasLoader(0, nil).Load(context.Background(), dir)
}

type aliasFileResult struct {
	name    string
	aliases []string
	err     error
}

// Load reads every regular file of dir. The canonical name is the file stem; the body is one
// alias per line. When two files share a stem the later one in lexical order wins.
func (l *AliasLoader) Load(ctx context.Context, dir string) *AliasesResult {
	paths, err := listFiles(dir)
	if err != nil {
		l.logger.WithError(err).WithField("source", dir).Error("failed to read aliases directory")
		return &AliasesResult{Aliases: map[string][]string{}, FailedSources: []string{dir}, DirectoryFailed: true}
	}

	results := make([]aliasFileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			results[i].name, results[i].aliases, results[i].err = loadAliasFile(path)
			return nil
		})
	}
	_ = g.Wait()

	res := &AliasesResult{Aliases: make(map[string][]string, len(paths)), FailedSources: []string{}, Overwritten: []string{}}
	owner := make(map[string]string, len(paths))
	for i, path := range paths {
		r := results[i]
		if r.err != nil {
			l.logger.WithError(r.err).WithField("source", path).Warn("failed to load alias file")
			res.FailedSources = append(res.FailedSources, path)
			continue
		}
		if prev, ok := owner[r.name]; ok {
			l.logger.WithFields(logrus.Fields{"canonical": r.name, "kept": path, "dropped": prev}).Info("alias file overwritten by same canonical name")
			res.Overwritten = append(res.Overwritten, prev)
		}
		owner[r.name] = path
		res.Aliases[r.name] = r.aliases
	}
	return res
}

func loadAliasFile(path string) (string, []string, error) {
	name, err := canonicalName(path)
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	if !utf8.Valid(data) {
		return "", nil, ErrInvalidEncoding
	}
	aliases := []string{}
	for _, line := range strings.Split(string(data), "\n") {
		if alias := strings.TrimSpace(line); alias != "" {
			aliases = append(aliases, alias)
		}
	}
	return name, aliases, nil
}

// canonicalName file base name minus its final extension; a leading dot is not an extension
func canonicalName(path string) (string, error) {
	base := filepath.Base(path)
	stem := base
	if i := strings.LastIndex(base, "."); i > 0 {
		stem = base[:i]
	}
	if stem == "" || stem == "." || !utf8.ValidString(stem) {
		return "", ErrUnrepresentableName
	}
	return stem, nil
}
