package reporting

import "github.com/jonathan/cv-analyzer/internal/types"

// phrases holds every fixed string of a report in one language
type phrases struct {
	promptLanguage string

	overviewHeading  string
	strengthsHeading string
	gapsHeading      string
	planHeading      string
	finalHeading     string
	tableHeader      string
	weekLabel        string

	notIdentified string
	strengthNote  string
	gapNote       string
	finalNotes    string

	weekTitles   [3]string
	taskPatterns [3]string // each takes the skill name
	paddingTasks []string
}

var english = phrases{
	promptLanguage: "english",

	overviewHeading:  "## Overview",
	strengthsHeading: "## Strengths",
	gapsHeading:      "## Skill Gaps",
	planHeading:      "## Actionable Upskilling Plan",
	finalHeading:     "## Final Notes",
	tableHeader:      "| Skill | Evidence/Notes |",
	weekLabel:        "Week",

	notIdentified: "Not identified yet",
	strengthNote:  "matches market demand",
	gapNote:       "learning priority",
	finalNotes:    "Follow the upskilling plan to close key gaps.",

	weekTitles:   [3]string{"Setup & Basics", "Core Practice", "Mini Project"},
	taskPatterns: [3]string{"Learn %s basics", "Follow a 1-2h tutorial on %s", "Practice 2-3 exercises using %s"},
	paddingTasks: []string{"Research relevant tech", "Write a one-page summary", "Discuss with a peer/mentor"},
}

var indonesian = phrases{
	promptLanguage: "indonesian",

	overviewHeading:  "## Ikhtisar",
	strengthsHeading: "## Kekuatan",
	gapsHeading:      "## Kesenjangan Keahlian",
	planHeading:      "## Rencana Upskilling",
	finalHeading:     "## Catatan Akhir",
	tableHeader:      "| Skill | Catatan |",
	weekLabel:        "Minggu",

	notIdentified: "Belum teridentifikasi",
	strengthNote:  "sesuai kebutuhan pasar",
	gapNote:       "prioritas belajar",
	finalNotes:    "Gunakan rencana belajar untuk menutup kesenjangan utama.",

	weekTitles:   [3]string{"Dasar & Instalasi", "Latihan Inti", "Proyek Mini"},
	taskPatterns: [3]string{"Pelajari dasar %s", "Ikuti tutorial 1-2 jam %s", "Praktikkan 2-3 latihan %s"},
	paddingTasks: []string{"Riset teknologi relevan", "Catat ringkasan 1 halaman", "Diskusikan dengan mentor/teman"},
}

func phrasesFor(lang types.Language) phrases {
	if lang.IsIndonesian() {
		return indonesian
	}
	return english
}

// Headings returns the required section headings for a language, in order
func Headings(lang types.Language) []string {
	p := phrasesFor(lang)
	return []string{p.overviewHeading, p.strengthsHeading, p.gapsHeading, p.planHeading, p.finalHeading}
}
