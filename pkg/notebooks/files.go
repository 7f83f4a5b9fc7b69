package notebooks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// emptyNotebook is a minimal nbformat 4 document.
const emptyNotebook = `{
 "cells": [],
 "metadata": {},
 "nbformat": 4,
 "nbformat_minor": 5
}
`

// Slug turns a title into a file name stem: diacritics are stripped, runs of
// anything other than letters and digits become a single hyphen.
func Slug(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// Create writes an empty notebook named after title into dir (a
// slash-delimited directory relative to root, possibly empty) and returns its
// item path relative to root.
func Create(root, dir, title string) (string, error) {
	stem := Slug(title)
	if stem == "" {
		return "", fmt.Errorf("title %q has no usable characters", title)
	}
	return write(root, dir, stem+".ipynb", []byte(emptyNotebook))
}

// Import stores content under name inside root and returns the item path.
// An existing file is never overwritten; a numeric suffix is added instead.
func Import(root, name, content string) (string, error) {
	base := filepath.Base(filepath.FromSlash(name))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "", fmt.Errorf("invalid notebook name %q", name)
	}
	return write(root, "", base, []byte(content))
}

func write(root, dir, name string, data []byte) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(dir))
	if err := os.MkdirAll(target, 0755); err != nil {
		return "", fmt.Errorf("create notebook dir: %w", err)
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name
	for i := 1; ; i++ {
		full := filepath.Join(target, candidate)
		f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", err
		}
		if err := f.Close(); err != nil {
			return "", err
		}
		return Rel(root, full)
	}
}
