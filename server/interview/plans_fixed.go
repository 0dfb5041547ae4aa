package interview

import "github.com/inquora/inquora/store"

// RoleStudent and friends are the roles with pre-authored plans.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleResearcher = "researcher"
	RoleStaff      = "staff"
)

// IsKnownRole reports whether a role has a pre-authored plan.
func IsKnownRole(role string) bool {
	_, ok := fixedPlans[role]
	return ok
}

// fixedPlans maps each supported role to its pre-authored interview plan.
var fixedPlans = map[string]*store.InterviewPlan{
	RoleStudent: {
		Objectives: []string{
			"Understand how students experience their courses day to day",
			"Identify the tools and resources students rely on most",
			"Surface obstacles that slow down learning",
			"Gather concrete suggestions for improving the student experience",
		},
		Questions: []string{
			"Can you walk me through a typical day in your studies?",
			"Which courses or activities do you find most engaging, and why?",
			"What tools or platforms do you use most often for coursework?",
			"Tell me about a recent moment when something got in the way of your learning.",
			"How do you usually get help when you're stuck on something?",
			"How well do deadlines and workload fit together across your courses?",
			"What do you wish your instructors understood better about your experience?",
			"If you could change one thing about how your program works, what would it be?",
		},
		FocusAreas: []string{
			"learning workflow",
			"tooling and resources",
			"obstacles and friction",
			"support and feedback channels",
		},
	},
	RoleInstructor: {
		Objectives: []string{
			"Understand how instructors plan and deliver their teaching",
			"Learn how instructors gauge whether students are keeping up",
			"Identify administrative or technical friction in teaching work",
			"Collect ideas for better supporting instructors",
		},
		Questions: []string{
			"How do you typically prepare for a new term or course?",
			"Walk me through how you deliver a typical class session.",
			"How do you know when students are struggling with the material?",
			"What kinds of feedback do you collect from students, and what do you do with it?",
			"Which administrative tasks take more of your time than they should?",
			"What tools do you use for teaching, and how well do they serve you?",
			"Tell me about a change you made to your teaching that worked well.",
			"What support from your institution would make the biggest difference for you?",
		},
		FocusAreas: []string{
			"course preparation and delivery",
			"student assessment and feedback",
			"administrative burden",
			"institutional support",
		},
	},
	RoleResearcher: {
		Objectives: []string{
			"Understand how researchers organize and run their projects",
			"Learn how collaboration and data sharing happen in practice",
			"Identify bottlenecks in funding, publishing, and infrastructure",
			"Gather suggestions for improving research support",
		},
		Questions: []string{
			"Can you describe the research you're currently working on?",
			"How do you organize a project from idea to publication?",
			"Who do you collaborate with, and how does that collaboration work day to day?",
			"How do you manage and share the data your work produces?",
			"Where do you lose the most time in your research workflow?",
			"How does the funding process shape what you choose to work on?",
			"What infrastructure or tooling do you wish you had access to?",
			"If you could fix one thing about how research is supported here, what would it be?",
		},
		FocusAreas: []string{
			"research workflow",
			"collaboration and data practices",
			"funding and publishing pressure",
			"infrastructure gaps",
		},
	},
	RoleStaff: {
		Objectives: []string{
			"Understand the day-to-day responsibilities of staff members",
			"Learn how staff coordinate with other teams and departments",
			"Identify process or tooling friction in staff work",
			"Collect ideas for improving staff workflows",
		},
		Questions: []string{
			"Can you describe what a typical week looks like in your role?",
			"Which other teams or departments do you work with most closely?",
			"What processes do you follow that feel slower or more complicated than they need to be?",
			"What tools do you depend on to get your work done?",
			"Tell me about a recent situation where coordination broke down. What happened?",
			"How do requests usually reach you, and how do you prioritize them?",
			"What part of your job do you find most rewarding?",
			"If you could redesign one process you're involved in, which would it be and why?",
		},
		FocusAreas: []string{
			"daily responsibilities",
			"cross-team coordination",
			"process friction",
			"tooling and prioritization",
		},
	},
}
