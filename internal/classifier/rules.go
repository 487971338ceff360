package classifier

// Built-in phrase sets, tuned on real application traffic. Patterns are
// compiled case-insensitive and may use full regular expression syntax.
var (
	defaultSent = []string{
		`thank you for applying`,
		`thank you for your application`,
		`we received your application`,
		`your application was sent to`,
		`you applied to`,
	}

	defaultRejected = []string{
		`we will not be moving forward`,
		`we have decided not to proceed`,
		`we regret to inform you`,
		`unfortunately`,
		`we reviewed your application`,
		`not a good fit`,
		`better match`,
		`better fit`,
		`decided to proceed with a shortlist`,
		`decided not to proceed`,
		`regret to inform`,
		`continue our search`,
		`moving forward with other candidates`,
	}

	defaultInterview = []string{
		`(schedule|availability|book|invite).*interview`,
		`interview.*(scheduled|invite|booking)`,
		`invitation to interview`,
		`recruiter.*reach out`,
	}

	// Guard phrases mark process boilerplate that quotes category
	// language without carrying news ("if shortlisted, a recruiter will
	// reach out to schedule an interview"). A guard hit anywhere in the
	// subject or body makes the whole message irrelevant.
	defaultGuards = []string{
		`what happens next`,
		`you['’]ll hear from us`,
		`shortlisted candidates`,
		`you are not selected`,
		`plan for what might occur`,
	}

	// Senders whose mail is never treated as application traffic.
	defaultDenylist = []string{
		"linkedin.com",
		"glassdoor.com",
		"substack.com",
		"amazon.com",
	}

	// Subject keywords that mark a message as irrelevant outright.
	defaultExcludedKeywords = []string{
		"order confirmation",
		"unsubscribe",
	}
)
