package chatbot

import (
	"fmt"
	"strings"
)

// pick selects one of the template variants uniformly at random. The random
// source is injectable so tests can pin the selection.
func (e *Engine) pick(variants ...string) string {
	if len(variants) == 1 {
		return variants[0]
	}
	return variants[e.randIntn(len(variants))]
}

// buildResponse dispatches to the response builder for the classified intent.
func (e *Engine) buildResponse(intent Intent, snap *SiteDataSnapshot, uc *UserContext) string {
	switch intent {
	case IntentGreeting:
		return e.greetingResponse(uc)
	case IntentCourse:
		return e.courseResponse(snap, uc)
	case IntentProgress:
		return e.progressResponse(uc)
	case IntentTechnology:
		return e.technologyResponse(snap)
	case IntentSuccess:
		return e.successResponse(snap)
	case IntentConsulting:
		return e.consultingResponse(uc)
	case IntentContact:
		return e.contactResponse()
	case IntentFarming:
		return e.farmingResponse(snap)
	default:
		return e.defaultResponse()
	}
}

func (e *Engine) greetingResponse(uc *UserContext) string {
	name := "there"
	if uc != nil && uc.DisplayName != "" {
		name = uc.DisplayName
	}
	return e.pick(
		fmt.Sprintf("Hello %s! Welcome to %s. Ask me about our courses, your progress, or smart farming in general.", name, e.brand),
		fmt.Sprintf("Hi %s! I'm the %s assistant. I can help you find a course, check your progress, or answer farming questions.", name, e.brand),
		fmt.Sprintf("Hey %s, great to see you at %s! What would you like to learn today?", name, e.brand),
	)
}

func (e *Engine) courseResponse(snap *SiteDataSnapshot, uc *UserContext) string {
	if len(snap.Courses) == 0 {
		return fmt.Sprintf("We're updating our catalog right now. Check back soon to see what %s has to offer!", e.brand)
	}

	titles := make([]string, 0, 3)
	for i, c := range snap.Courses {
		if i == 3 {
			break
		}
		titles = append(titles, c.Title)
	}
	listing := strings.Join(titles, ", ")

	if uc != nil && uc.IsActive {
		return e.pick(
			fmt.Sprintf("You're already enrolled in %d course(s) — nice! If you want more, we have %d courses including %s.", len(uc.Enrollments), len(snap.Courses), listing),
			fmt.Sprintf("Looking for your next challenge? Beyond your current enrollments we offer %d courses such as %s.", len(snap.Courses), listing),
		)
	}

	return e.pick(
		fmt.Sprintf("We currently offer %d courses, including %s. Enroll from the courses page to get started!", len(snap.Courses), listing),
		fmt.Sprintf("Great question! Popular picks right now are %s. There are %d courses in total — something for every level.", listing, len(snap.Courses)),
	)
}

func (e *Engine) progressResponse(uc *UserContext) string {
	if uc == nil {
		return fmt.Sprintf("Sign in to %s to track your course progress and achievements!", e.brand)
	}
	if !uc.IsActive {
		return e.pick(
			fmt.Sprintf("You're not enrolled in any course yet, %s. Enroll in one of our courses and I'll help you track your progress!", uc.DisplayName),
			fmt.Sprintf("No enrollments yet, %s — browse the catalog and join a course to start building your progress.", uc.DisplayName),
		)
	}
	return fmt.Sprintf(
		"You're doing great, %s! You're enrolled in %d course(s) with an average progress of %d%%, and you've completed %d of %d recent lessons. Keep it up!",
		uc.DisplayName, len(uc.Enrollments), uc.TotalProgressPercent, uc.CompletedLessonCount, uc.TotalLessonCount,
	)
}

func (e *Engine) technologyResponse(snap *SiteDataSnapshot) string {
	var techCourse string
	for _, c := range snap.Courses {
		if strings.EqualFold(c.Category, "technology") {
			techCourse = c.Title
			break
		}
	}
	if techCourse != "" {
		return e.pick(
			fmt.Sprintf("Smart farming is our specialty! IoT sensors, drones and automation can transform any farm. Start with our \"%s\" course.", techCourse),
			fmt.Sprintf("From soil sensors to automated irrigation, agricultural technology pays for itself fast. \"%s\" is a great place to begin.", techCourse),
		)
	}
	return "Agricultural technology — IoT sensors, drones, automation — is at the heart of what we teach. Browse our technology courses to dive in."
}

func (e *Engine) successResponse(snap *SiteDataSnapshot) string {
	if len(snap.SuccessStories) > 0 {
		s := snap.SuccessStories[e.randIntn(len(snap.SuccessStories))]
		return fmt.Sprintf("Our students achieve real results. %s: %s", s.Title, s.Story)
	}
	if len(snap.Testimonials) > 0 {
		tm := snap.Testimonials[e.randIntn(len(snap.Testimonials))]
		return fmt.Sprintf("Here's what %s says about us: \"%s\"", tm.AuthorName, tm.Quote)
	}
	return fmt.Sprintf("Students of %s go on to run smarter, more productive farms. Check the success stories page for details!", e.brand)
}

func (e *Engine) consultingResponse(uc *UserContext) string {
	name := "there"
	if uc != nil && uc.DisplayName != "" {
		name = uc.DisplayName
	}
	return e.pick(
		fmt.Sprintf("Happy to help, %s! Our agronomy experts offer one-on-one consultations — book a session from the consulting page.", name),
		fmt.Sprintf("%s specialists can advise on anything from soil planning to farm automation. Request a consultation and we'll match you with an expert.", e.brand),
	)
}

func (e *Engine) contactResponse() string {
	return e.pick(
		fmt.Sprintf("You can reach the %s team at support@artificialfarm.academy or through the contact form on the site.", e.brand),
		"Our support team replies within one business day — email support@artificialfarm.academy or use the contact page.",
	)
}

func (e *Engine) farmingResponse(snap *SiteDataSnapshot) string {
	var agroCourse string
	for _, c := range snap.Courses {
		if strings.EqualFold(c.Category, "agronomy") {
			agroCourse = c.Title
			break
		}
	}
	if agroCourse != "" {
		return e.pick(
			fmt.Sprintf("Healthy soil is the foundation of every good harvest. Our \"%s\" course covers soil, crops and irrigation in depth.", agroCourse),
			fmt.Sprintf("Good question! Crop and soil management is covered step by step in \"%s\" — from planting to harvest.", agroCourse),
		)
	}
	return "From soil preparation to pest control, good agronomy is learnable. Our farming courses walk you through each season step by step."
}

func (e *Engine) defaultResponse() string {
	return e.pick(
		fmt.Sprintf("I'm the %s assistant! Ask me about our courses, your learning progress, smart farming technology, or how to get in touch.", e.brand),
		"I'm not sure I caught that — try asking about courses, your progress, farming techniques, or consultations.",
		fmt.Sprintf("Let's find what you need. %s offers courses, expert consultations and a community of smart farmers — what are you curious about?", e.brand),
	)
}
