package generator

import "strings"

// TemplateInfo describes a predefined template for the gallery endpoints.
type TemplateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Features    string `json:"features"`
	BestFor     string `json:"best_for"`
}

// TemplateValidation is the structural check run on a LaTeX template before
// it is sent anywhere. Placeholder markers are reported but not required:
// users may submit templates already filled another way.
type TemplateValidation struct {
	HasDocumentClass bool `json:"has_documentclass"`
	HasBeginDocument bool `json:"has_begin_document"`
	HasEndDocument   bool `json:"has_end_document"`
	HasPlaceholders  bool `json:"has_placeholders"`
	IsValid          bool `json:"is_valid"`
}

var placeholderMarkers = []string{"[FULL_NAME]", "[EMAIL]", "[PHONE]", "[LOCATION]"}

// ValidateTemplate checks that content is a complete LaTeX document.
func ValidateTemplate(content string) TemplateValidation {
	v := TemplateValidation{
		HasDocumentClass: strings.Contains(content, `\documentclass`),
		HasBeginDocument: strings.Contains(content, `\begin{document}`),
		HasEndDocument:   strings.Contains(content, `\end{document}`),
	}
	for _, marker := range placeholderMarkers {
		if strings.Contains(content, marker) {
			v.HasPlaceholders = true
			break
		}
	}
	v.IsValid = v.HasDocumentClass && v.HasBeginDocument && v.HasEndDocument
	return v
}

// missing names the structural parts a template lacks.
func (v TemplateValidation) missing() []string {
	var parts []string
	if !v.HasDocumentClass {
		parts = append(parts, `\documentclass`)
	}
	if !v.HasBeginDocument {
		parts = append(parts, `\begin{document}`)
	}
	if !v.HasEndDocument {
		parts = append(parts, `\end{document}`)
	}
	return parts
}

// TemplateNames lists the predefined templates in catalog order.
func TemplateNames() []string {
	return []string{"professional", "modern", "academic", "minimal", "creative"}
}

// Template returns a predefined template body by name.
func Template(name string) (string, bool) {
	t, ok := predefinedTemplates[name]
	return t, ok
}

// Info returns catalog metadata for a predefined template.
func Info(name string) (TemplateInfo, bool) {
	info, ok := templateInfo[name]
	return info, ok
}

var templateInfo = map[string]TemplateInfo{
	"professional": {
		Name:        "Professional",
		Description: "Clean, traditional format ideal for corporate environments",
		Features:    "Standard sections, conservative styling, ATS-friendly",
		BestFor:     "Corporate jobs, traditional industries, senior positions",
	},
	"modern": {
		Name:        "Modern CV",
		Description: "Contemporary design using moderncv package",
		Features:    "Professional styling, sidebar layout, modern typography",
		BestFor:     "Tech industry, consulting, modern companies",
	},
	"academic": {
		Name:        "Academic",
		Description: "Format designed for academic and research positions",
		Features:    "Publications section, research focus, formal structure",
		BestFor:     "Academic positions, research roles, PhD applications",
	},
	"minimal": {
		Name:        "Minimal",
		Description: "Simple, clean design with minimal styling",
		Features:    "Basic formatting, fast compilation, universal compatibility",
		BestFor:     "Simple applications, quick resumes, basic positions",
	},
	"creative": {
		Name:        "Creative",
		Description: "Eye-catching design with colors and icons",
		Features:    "Colors, FontAwesome icons, modern layout",
		BestFor:     "Creative roles, design positions, startups",
	},
}

var predefinedTemplates = map[string]string{
	"professional": `\documentclass[letterpaper,11pt]{article}
\usepackage[left=0.75in,top=0.6in,right=0.75in,bottom=0.6in]{geometry}
\usepackage{titlesec}
\usepackage{enumitem}
\usepackage{hyperref}

\pagestyle{empty}
\setlength{\parindent}{0pt}

\titleformat{\section}
  {\large\bfseries\uppercase}
  {}
  {0pt}
  {}
  [\titlerule]

\titleformat{\subsection}
  {\bfseries}
  {}
  {0pt}
  {}

\begin{document}

% Header
\begin{center}
{\Large \textbf{[FULL_NAME]}}\\[0.2cm]
[PHONE] $\bullet$ [EMAIL] $\bullet$ [LOCATION]\\
[LINKEDIN] $\bullet$ [GITHUB]
\end{center}

% Professional Summary
\section{Professional Summary}
[PROFESSIONAL_SUMMARY]

% Work Experience
\section{Professional Experience}
[WORK_EXPERIENCE]

% Education
\section{Education}
[EDUCATION]

% Skills
\section{Technical Skills}
[SKILLS]

% Projects
\section{Projects}
[PROJECTS]

\end{document}`,

	"modern": `\documentclass[11pt,a4paper,sans]{moderncv}
\moderncvstyle{banking}
\moderncvcolor{blue}

\usepackage[scale=0.75]{geometry}

\name{[FIRST_NAME]}{[LAST_NAME]}
\title{[TITLE]}
\address{[LOCATION]}
\phone{[PHONE]}
\email{[EMAIL]}
\social[linkedin]{[LINKEDIN]}
\social[github]{[GITHUB]}

\begin{document}
\makecvtitle

\section{Professional Summary}
[PROFESSIONAL_SUMMARY]

\section{Experience}
[WORK_EXPERIENCE]

\section{Education}
[EDUCATION]

\section{Skills}
[SKILLS]

\section{Projects}
[PROJECTS]

\end{document}`,

	"academic": `\documentclass[11pt]{article}
\usepackage[margin=1in]{geometry}
\usepackage{enumitem}
\usepackage{hyperref}
\usepackage{titlesec}

\pagestyle{empty}

\titleformat{\section*}
  {\large\bfseries}
  {}
  {0pt}
  {}

\begin{document}

\begin{center}
{\LARGE \textbf{[FULL_NAME]}}\\[0.3cm]
[EMAIL] $\bullet$ [PHONE] $\bullet$ [LOCATION]\\
[LINKEDIN] $\bullet$ [GITHUB]
\end{center}

\section*{Research Interests}
[PROFESSIONAL_SUMMARY]

\section*{Education}
[EDUCATION]

\section*{Experience}
[WORK_EXPERIENCE]

\section*{Publications}
[PUBLICATIONS]

\section*{Skills}
[SKILLS]

\section*{Projects}
[PROJECTS]

\end{document}`,

	"minimal": `\documentclass[11pt]{article}
\usepackage[margin=0.8in]{geometry}
\usepackage{enumitem}
\usepackage{hyperref}

\pagestyle{empty}
\setlength{\parindent}{0pt}

\begin{document}

% Header
\textbf{\Large [FULL_NAME]}\\
[PHONE] | [EMAIL] | [LOCATION]\\
[LINKEDIN] | [GITHUB]

\vspace{0.2cm}

% Professional Summary
\textbf{Professional Summary}\\
[PROFESSIONAL_SUMMARY]

\vspace{0.2cm}

% Work Experience
\textbf{Experience}\\
[WORK_EXPERIENCE]

\vspace{0.2cm}

% Education
\textbf{Education}\\
[EDUCATION]

\vspace{0.2cm}

% Skills
\textbf{Skills}\\
[SKILLS]

% Projects
\textbf{Projects}\\
[PROJECTS]

\end{document}`,

	"creative": `\documentclass[letterpaper,11pt]{article}
\usepackage[left=0.5in,top=0.5in,right=0.5in,bottom=0.5in]{geometry}
\usepackage{titlesec}
\usepackage{enumitem}
\usepackage{hyperref}
\usepackage{xcolor}
\usepackage{fontawesome}

\definecolor{primarycolor}{RGB}{41, 128, 185}
\definecolor{secondarycolor}{RGB}{52, 73, 94}

\pagestyle{empty}
\setlength{\parindent}{0pt}

\titleformat{\section}
  {\large\bfseries\color{primarycolor}}
  {}
  {0pt}
  {}
  [\color{primarycolor}\titlerule]

\begin{document}

% Header
\begin{center}
{\Huge \textbf{\color{primarycolor}[FULL_NAME]}}\\[0.3cm]
\color{secondarycolor}
\faPhone \ [PHONE] $\bullet$ \faEnvelope \ [EMAIL] $\bullet$ \faMapMarker \ [LOCATION]\\
\faLinkedin \ [LINKEDIN] $\bullet$ \faGithub \ [GITHUB]
\end{center}

\vspace{0.3cm}

% Professional Summary
\section{Professional Summary}
[PROFESSIONAL_SUMMARY]

% Work Experience
\section{Professional Experience}
[WORK_EXPERIENCE]

% Education
\section{Education}
[EDUCATION]

% Skills
\section{Technical Skills}
[SKILLS]

% Projects
\section{Featured Projects}
[PROJECTS]

\end{document}`,
}
