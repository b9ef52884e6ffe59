package catalog

import (
	"strings"

	"ollamagui/pkg/types"
)

// Bucket caps and the categorization window.
const (
	CategorizeWindow = 100
	MaxPopular       = 20
	MaxNew           = 10
	MaxCode          = 15
	MaxChat          = 15
	MaxSearchResults = 50
)

var (
	codeKeywords = []string{"coder", "code", "python"}
	chatKeywords = []string{"chat", "instruct"}
)

// Partition assigns every entry to exactly one bucket, first match wins:
// code, then chat, then new (has a modification time), then popular. Order
// within each bucket follows the input order.
func Partition(entries []types.ModelDescriptor) types.Categories {
	cats := emptyCategories()
	for _, m := range entries {
		name := strings.ToLower(m.FullName)
		switch {
		case containsAny(name, codeKeywords):
			cats.Code = append(cats.Code, m)
		case containsAny(name, chatKeywords):
			cats.Chat = append(cats.Chat, m)
		case m.ModifiedAt != "":
			cats.New = append(cats.New, m)
		default:
			cats.Popular = append(cats.Popular, m)
		}
	}
	return cats
}

// Categorize partitions the first CategorizeWindow entries and truncates each
// bucket to its cap.
func Categorize(entries []types.ModelDescriptor) types.Categories {
	if len(entries) > CategorizeWindow {
		entries = entries[:CategorizeWindow]
	}
	cats := Partition(entries)
	cats.Popular = truncate(cats.Popular, MaxPopular)
	cats.New = truncate(cats.New, MaxNew)
	cats.Code = truncate(cats.Code, MaxCode)
	cats.Chat = truncate(cats.Chat, MaxChat)
	return cats
}

// Filter returns every entry whose full or short name contains term,
// case-insensitively.
func Filter(entries []types.ModelDescriptor, term string) []types.ModelDescriptor {
	term = strings.ToLower(term)
	out := []types.ModelDescriptor{}
	for _, m := range entries {
		if strings.Contains(strings.ToLower(m.FullName), term) || strings.Contains(strings.ToLower(m.ShortName), term) {
			out = append(out, m)
		}
	}
	return out
}

func emptyCategories() types.Categories {
	return types.Categories{
		Popular: []types.ModelDescriptor{},
		New:     []types.ModelDescriptor{},
		Code:    []types.ModelDescriptor{},
		Chat:    []types.ModelDescriptor{},
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func truncate(in []types.ModelDescriptor, n int) []types.ModelDescriptor {
	if len(in) > n {
		return in[:n]
	}
	return in
}
