package assemble

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-charsheet/pkg/format"
	"github.com/goliatone/go-charsheet/pkg/profile"
	"github.com/goliatone/go-charsheet/pkg/schema"
	"github.com/goliatone/go-charsheet/pkg/section"
)

// ErrBudgetExceeded is returned under the truncate policy with
// WithStrictBudget when the document is still over budget after every
// droppable entry has been removed.
var ErrBudgetExceeded = errors.New("assemble: page budget exceeded")

type fitted struct {
	fragments []section.Fragment
	lines     int
	warnings  []format.Warning
}

// Estimate returns the estimated line count of fragments under budget: each
// rendered fragment contributes its own estimate plus the section header
// allowance.
func Estimate(fragments []section.Fragment, budget profile.Budget) int {
	lines := 0
	for _, fragment := range fragments {
		if fragment.Omitted {
			continue
		}
		lines += fragment.Lines + budget.HeaderLines
	}
	return lines
}

func (a *Assembler) fit(ctx context.Context, record schema.CharacterRecord, derived format.Derived, p profile.Profile, fragments []section.Fragment) (fitted, error) {
	out := fitted{fragments: fragments, lines: Estimate(fragments, p.Budget)}
	limit := p.Budget.MaxLines()
	if out.lines <= limit {
		return out, nil
	}

	if p.Overflow.Policy != profile.PolicyTruncate {
		out.warnings = append(out.warnings, format.Warning{
			Kind: format.WarningOverflow,
			Message: fmt.Sprintf("estimated %d pages exceed the %d-page budget",
				p.Budget.PagesFor(out.lines), p.Budget.Pages),
		})
		return out, nil
	}

	dropped := make(map[schema.GroupID][]int)
	for out.lines > limit {
		if err := ctx.Err(); err != nil {
			return fitted{}, err
		}

		at, victim, ok := lowestPriority(out.fragments, p.Overflow.Order)
		if !ok {
			if a.strictBudget {
				return fitted{}, fmt.Errorf("%w: %d lines estimated, %d available", ErrBudgetExceeded, out.lines, limit)
			}
			out.warnings = append(out.warnings, format.Warning{
				Kind: format.WarningOverflow,
				Message: fmt.Sprintf("estimated %d pages exceed the %d-page budget with nothing left to drop",
					p.Budget.PagesFor(out.lines), p.Budget.Pages),
			})
			a.logger.Debug("budget not met",
				zap.String("variant", p.Name),
				zap.Int("lines", out.lines),
				zap.Int("limit", limit),
			)
			return out, nil
		}
		group := out.fragments[at].Group
		dropped[group] = append(dropped[group], victim.Index)

		fragment, err := a.renderer.Rerender(ctx, group, record, derived, p, dropped[group])
		if err != nil {
			return fitted{}, fmt.Errorf("assemble: render %s: %w", group, err)
		}
		out.fragments[at] = fragment
		out.lines = Estimate(out.fragments, p.Budget)
		out.warnings = append(out.warnings, format.Warning{
			Kind:    format.WarningOverflow,
			Path:    string(group),
			Message: fmt.Sprintf("dropped %q to fit the %d-page budget", victim.Name, p.Budget.Pages),
		})
		a.logger.Debug("entry dropped",
			zap.String("variant", p.Name),
			zap.String("group", string(group)),
			zap.String("entry", victim.Name),
			zap.Int("rank", victim.Rank),
			zap.Int("lines", out.lines),
		)
	}
	return out, nil
}

// lowestPriority picks the entry to drop next: the highest-ranked entry
// across every group in order. On equal ranks the group listed first in order
// gives way, and within a group the latest entry does.
func lowestPriority(fragments []section.Fragment, order []schema.GroupID) (int, section.Kept, bool) {
	at := -1
	var victim section.Kept
	for _, group := range order {
		for i, fragment := range fragments {
			if fragment.Group != group {
				continue
			}
			for _, kept := range fragment.Kept {
				if at < 0 || kept.Rank > victim.Rank || (i == at && kept.Rank == victim.Rank) {
					at, victim = i, kept
				}
			}
		}
	}
	if at < 0 {
		return 0, section.Kept{}, false
	}
	return at, victim, true
}
