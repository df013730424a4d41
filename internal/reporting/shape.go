package reporting

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-analyzer/internal/types"
)

// placeholderSkill marks the gap row seeded when nothing was identified
const placeholderSkill = "-"

// maxFallbackRows caps the rows per table in the fallback report
const maxFallbackRows = 5

// EnforceShape applies the pre-render invariants: rows without a skill are
// dropped, an empty strengths and gaps pair gets one placeholder gap, and a
// plan outside [MinPlanWeeks, MaxPlanWeeks] weeks is replaced by DefaultWeeks.
func EnforceShape(rd *types.ReportData, lang types.Language) {
	p := phrasesFor(lang)

	rd.Overview = strings.TrimSpace(rd.Overview)
	rd.FinalNotes = strings.TrimSpace(rd.FinalNotes)
	rd.Strengths = cleanRows(rd.Strengths)
	rd.Gaps = cleanRows(rd.Gaps)

	if len(rd.Strengths) == 0 && len(rd.Gaps) == 0 {
		rd.Gaps = []types.TableItem{{Skill: placeholderSkill, Notes: p.notIdentified}}
	}

	if len(rd.PlanWeeks) < types.MinPlanWeeks || len(rd.PlanWeeks) > types.MaxPlanWeeks {
		rd.PlanWeeks = DefaultWeeks(rd.Gaps, lang)
		return
	}
	for i := range rd.PlanWeeks {
		rd.PlanWeeks[i].Title = strings.TrimSpace(rd.PlanWeeks[i].Title)
		rd.PlanWeeks[i].Tasks = cleanTasks(rd.PlanWeeks[i].Tasks)
	}
}

func cleanRows(rows []types.TableItem) []types.TableItem {
	out := make([]types.TableItem, 0, len(rows))
	for _, r := range rows {
		r.Skill = strings.TrimSpace(r.Skill)
		r.Notes = strings.TrimSpace(r.Notes)
		if r.Skill == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

func cleanTasks(tasks []string) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// DefaultWeeks builds the three-week plan from the first three real gaps,
// padding with generic research tasks.
func DefaultWeeks(gaps []types.TableItem, lang types.Language) []types.WeekPlan {
	p := phrasesFor(lang)

	var taskSets [][]string
	for _, g := range gaps {
		if len(taskSets) == len(p.weekTitles) {
			break
		}
		if g.Skill == "" || g.Skill == placeholderSkill {
			continue
		}
		tasks := make([]string, 0, len(p.taskPatterns))
		for _, pattern := range p.taskPatterns {
			tasks = append(tasks, fmt.Sprintf(pattern, g.Skill))
		}
		taskSets = append(taskSets, tasks)
	}
	for len(taskSets) < len(p.weekTitles) {
		taskSets = append(taskSets, append([]string{}, p.paddingTasks...))
	}

	weeks := make([]types.WeekPlan, 0, len(p.weekTitles))
	for i, title := range p.weekTitles {
		weeks = append(weeks, types.WeekPlan{Title: title, Tasks: taskSets[i]})
	}
	return weeks
}

// Fallback builds a report from the context alone
func Fallback(rc Context, lang types.Language) types.ReportData {
	p := phrasesFor(lang)

	rd := types.ReportData{
		Overview:   strings.TrimSpace(truncate(rc.Summary, maxFallbackSummary)),
		Strengths:  rows(rc.Diff.Strengths, p.strengthNote),
		Gaps:       rows(rc.Diff.Gaps, p.gapNote),
		FinalNotes: p.finalNotes,
	}
	EnforceShape(&rd, lang)
	return rd
}

func rows(skills []string, note string) []types.TableItem {
	if len(skills) > maxFallbackRows {
		skills = skills[:maxFallbackRows]
	}
	out := make([]types.TableItem, 0, len(skills))
	for _, s := range skills {
		out = append(out, types.TableItem{Skill: s, Notes: note})
	}
	return out
}
