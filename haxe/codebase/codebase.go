// Package codebase keeps the parsed Haxe expression files of a workspace
// and serves them over the Language Server Protocol.
package codebase

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/hxparse/haxe/parser"
	"github.com/dhamidi/hxparse/haxe/script"
)

var log = commonlog.GetLogger("hxparse.codebase")

type Codebase struct {
	mu         sync.RWMutex
	rootDir    string
	extensions []string
	files      map[string]*FileInfo
}

type FileInfo struct {
	Path    string
	Content []byte
	Script  *script.Script
}

// Diagnostics returns the parse diagnostics of the file in source order.
func (f *FileInfo) Diagnostics() []parser.Diagnostic {
	if f == nil || f.Script == nil {
		return nil
	}
	return f.Script.Diagnostics
}

// New returns an empty codebase rooted at rootDir that tracks files with
// one of the given extensions.
func New(rootDir string, extensions []string) *Codebase {
	return &Codebase{
		rootDir:    rootDir,
		extensions: extensions,
		files:      make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// Matches reports whether path is a file the codebase tracks.
func (c *Codebase) Matches(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range c.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// ScanAll parses every matching file below the root directory. Files that
// cannot be read are skipped, and their errors are returned together.
func (c *Codebase) ScanAll(ctx context.Context) error {
	var result *multierror.Error
	walkErr := filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			result = multierror.Append(result, err)
			return nil
		}
		if info.IsDir() {
			if path != c.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !c.Matches(path) {
			return nil
		}
		if err := c.ScanFile(ctx, path); err != nil {
			if ctx.Err() != nil {
				return err
			}
			result = multierror.Append(result, err)
		}
		return nil
	})
	if walkErr != nil {
		return walkErr
	}
	return result.ErrorOrNil()
}

func (c *Codebase) ScanFile(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}
	_, err = c.UpdateFile(ctx, path, content)
	return err
}

// UpdateFile replaces the content of path and reparses it.
func (c *Codebase) UpdateFile(ctx context.Context, path string, content []byte) (*FileInfo, error) {
	s, err := script.Parse(ctx, content, path)
	if err != nil {
		return nil, err
	}
	info := &FileInfo{Path: path, Content: content, Script: s}
	log.Debugf("parsed %s: %d expressions, %d diagnostics", path, len(s.Expressions), len(s.Diagnostics))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = info
	return info, nil
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns every tracked file ordered by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	files := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// NodeAt returns the innermost node at the zero-based line and byte
// column of path, or nil.
func (c *Codebase) NodeAt(path string, line, column int) *parser.Node {
	f := c.GetFile(path)
	if f == nil || f.Script == nil {
		return nil
	}
	offset := OffsetAt(f.Content, line, column)
	if offset < 0 {
		return nil
	}
	return f.Script.NodeAt(offset)
}

// OffsetAt converts a zero-based line and byte column to a byte offset. It
// returns -1 when line is past the end of content; columns past the end of
// the line clamp to it.
func OffsetAt(content []byte, line, column int) int {
	if line < 0 || column < 0 {
		return -1
	}
	offset := 0
	for ; line > 0; line-- {
		i := bytes.IndexByte(content[offset:], '\n')
		if i < 0 {
			return -1
		}
		offset += i + 1
	}
	end := len(content)
	if i := bytes.IndexByte(content[offset:], '\n'); i >= 0 {
		end = offset + i
	}
	return min(offset+column, end)
}
