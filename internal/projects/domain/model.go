package domain

import "strings"

// Project is a managed work item with owner, team and schedule metadata.
// The JSON layout is shared by the HTTP API and every storage backend.
type Project struct {
	ProductID        string   `json:"productId"`
	ProductName      string   `json:"productName"`
	ProductOwnerName string   `json:"productOwnerName"`
	Developers       []string `json:"developers"`
	ScrumMasterName  string   `json:"scrumMasterName"`
	StartDate        string   `json:"startDate"`
	Methodology      string   `json:"methodology"`
}

// Clone returns a copy that does not share the developers slice.
func (p Project) Clone() Project {
	out := p
	if p.Developers != nil {
		out.Developers = append([]string(nil), p.Developers...)
	}
	return out
}

// NormalizeStartDate rewrites date separators so "2023-04-01" becomes "2023/04/01".
func NormalizeStartDate(date string) string {
	return strings.ReplaceAll(date, "-", "/")
}

// Merge applies the fields set in patch over existing. The identifier of
// existing is always kept, even when patch carries a different one; the
// route parameter decides which project is updated.
func Merge(existing, patch Project) Project {
	out := existing.Clone()

	if patch.ProductName != "" {
		out.ProductName = patch.ProductName
	}
	if patch.ProductOwnerName != "" {
		out.ProductOwnerName = patch.ProductOwnerName
	}
	if len(patch.Developers) > 0 {
		out.Developers = append([]string(nil), patch.Developers...)
	}
	if patch.ScrumMasterName != "" {
		out.ScrumMasterName = patch.ScrumMasterName
	}
	if patch.StartDate != "" {
		out.StartDate = patch.StartDate
	}
	if patch.Methodology != "" {
		out.Methodology = patch.Methodology
	}

	return out
}
