package recommend

import (
	"github.com/julianstephens/habitual/internal/models"
)

// Rule maps assessment answers to one suggested habit.
type Rule struct {
	Recommendation models.Recommendation
	Match          Matcher
}

// Rules is the recommendation table. Order breaks priority ties.
var Rules = []Rule{
	{
		Recommendation: models.Recommendation{
			ID:            "breathing-breaks",
			Title:         "Breathing Breaks",
			Description:   "Take three 2-minute box-breathing breaks spread through the day",
			Category:      models.CategoryMindfulness,
			Difficulty:    models.DifficultyEasy,
			EstimatedTime: "6 minutes",
			Benefits:      []string{"Lower heart rate", "Calmer reactions", "Quick reset between tasks"},
			Tips:          []string{"Inhale, hold, exhale, hold for 4 seconds each", "Tie breaks to existing cues like meetings", "Set gentle reminders"},
			Priority:      90,
		},
		Match: stressAtLeast(7),
	},
	{
		Recommendation: models.Recommendation{
			ID:            "mindfulness-meditation",
			Title:         "Mindfulness Meditation",
			Description:   "10 minutes of daily meditation to reduce stress and improve focus",
			Category:      models.CategoryMindfulness,
			Difficulty:    models.DifficultyEasy,
			EstimatedTime: "10 minutes",
			Benefits:      []string{"Reduced stress", "Better emotional regulation", "Improved focus"},
			Tips:          []string{"Start with guided meditations", "Find a quiet space", "Be consistent with timing"},
			Priority:      85,
		},
		Match: goal("Reduce stress"),
	},
	{
		Recommendation: models.Recommendation{
			ID:            "consistent-bedtime",
			Title:         "Consistent Bedtime",
			Description:   "Go to bed at the same time every night, screens off 30 minutes before",
			Category:      models.CategoryHealth,
			Difficulty:    models.DifficultyMedium,
			EstimatedTime: "30 minutes",
			Benefits:      []string{"Deeper sleep", "More energy", "Steadier mood"},
			Tips:          []string{"Pick a bedtime you can keep on weekends", "Dim the lights an hour before", "Keep the phone out of the bedroom"},
			Priority:      82,
		},
		Match: anyOf(
			sleepSchedule("Less than 6 hours", "Irregular"),
			challenge("Poor sleep"),
			badHabit("Poor sleep schedule"),
		),
	},
	{
		Recommendation: models.Recommendation{
			ID:            "deep-work",
			Title:         "Deep Work Sessions",
			Description:   "Dedicate 90 minutes daily to focused, distraction-free work",
			Category:      models.CategoryProductivity,
			Difficulty:    models.DifficultyMedium,
			EstimatedTime: "90 minutes",
			Benefits:      []string{"Increased focus", "Higher quality output", "Reduced stress"},
			Tips:          []string{"Turn off notifications", "Use the Pomodoro technique", "Choose your most important task"},
			Priority:      80,
		},
		Match: anyOf(goal("Improve productivity"), challenge("Lack of focus")),
	},
	{
		Recommendation: models.Recommendation{
			ID:            "daily-walk",
			Title:         "Daily Walk",
			Description:   "A brisk 20-minute walk, ideally outdoors",
			Category:      models.CategoryHealth,
			Difficulty:    models.DifficultyEasy,
			EstimatedTime: "20 minutes",
			Benefits:      []string{"Better circulation", "Clearer thinking", "Gentle start to fitness"},
			Tips:          []string{"Walk after lunch", "Take calls on foot", "Track your steps"},
			Priority:      78,
		},
		Match: anyOf(activityLevel("Sedentary"), badHabit("Lack of exercise")),
	},
	{
		Recommendation: models.Recommendation{
			ID:            "morning-exercise",
			Title:         "Morning Exercise",
			Description:   "30 minutes of physical activity to start your day",
			Category:      models.CategoryHealth,
			Difficulty:    models.DifficultyMedium,
			EstimatedTime: "30 minutes",
			Benefits:      []string{"Increased energy", "Better mood", "Improved fitness"},
			Tips:          []string{"Start with light exercises", "Prepare workout clothes the night before", "Find activities you enjoy"},
			Priority:      75,
		},
		Match: goal("Better health habits"),
	},
	{
		Recommendation: models.Recommendation{
			ID:            "two-minute-start",
			Title:         "Two-Minute Start",
			Description:   "Begin your most-avoided task for just two minutes",
			Category:      models.CategoryProductivity,
			Difficulty:    models.DifficultyEasy,
			EstimatedTime: "5 minutes",
			Benefits:      []string{"Less procrastination", "Momentum", "Smaller mental barrier"},
			Tips:          []string{"Decide the task the night before", "Set a timer", "Allow yourself to stop after two minutes"},
			Priority:      72,
		},
		Match: anyOf(challenge("Procrastination"), badHabit("Procrastination")),
	},
	{
		Recommendation: models.Recommendation{
			ID:            "daily-reading",
			Title:         "Daily Reading",
			Description:   "Read for 30 minutes daily to expand knowledge and skills",
			Category:      models.CategoryLearning,
			Difficulty:    models.DifficultyEasy,
			EstimatedTime: "30 minutes",
			Benefits:      []string{"Expanded knowledge", "Improved vocabulary", "Better critical thinking"},
			Tips:          []string{"Choose books related to your goals", "Read at the same time daily", "Take notes on key insights"},
			Priority:      70,
		},
		Match: goal("Learn new skills"),
	},
	{
		Recommendation: models.Recommendation{
			ID:            "digital-sunset",
			Title:         "Digital Sunset",
			Description:   "No social media or recreational screens after 9 PM",
			Category:      models.CategoryMindfulness,
			Difficulty:    models.DifficultyMedium,
			EstimatedTime: "15 minutes",
			Benefits:      []string{"Better sleep", "More present evenings", "Less comparison stress"},
			Tips:          []string{"Charge your phone outside the bedroom", "Use app timers", "Replace scrolling with a book"},
			Priority:      68,
		},
		Match: anyOf(challenge("Too much screen time"), badHabit("Excessive social media")),
	},
	{
		Recommendation: models.Recommendation{
			ID:            "skill-practice",
			Title:         "Deliberate Skill Practice",
			Description:   "Practice one career skill with a concrete goal for 45 minutes",
			Category:      models.CategoryCareer,
			Difficulty:    models.DifficultyHard,
			EstimatedTime: "45 minutes",
			Benefits:      []string{"Faster growth", "Visible progress", "Stronger portfolio"},
			Tips:          []string{"Work at the edge of your ability", "Get feedback weekly", "Keep a practice log"},
			Priority:      66,
		},
		Match: goal("Career advancement"),
	},
	{
		Recommendation: models.Recommendation{
			ID:            "evening-planning",
			Title:         "Evening Planning",
			Description:   "Spend 15 minutes each evening planning the next day",
			Category:      models.CategoryProductivity,
			Difficulty:    models.DifficultyEasy,
			EstimatedTime: "15 minutes",
			Benefits:      []string{"Better time management", "Reduced stress", "Clearer priorities"},
			Tips:          []string{"Review accomplishments", "Set 3 key priorities", "Prepare materials needed"},
			Priority:      65,
		},
		Match: profession("Software Developer", "Manager/Executive"),
	},
	{
		Recommendation: models.Recommendation{
			ID:            "hydration",
			Title:         "Morning Hydration",
			Description:   "Drink a full glass of water first thing every morning",
			Category:      models.CategoryHealth,
			Difficulty:    models.DifficultyEasy,
			EstimatedTime: "2 minutes",
			Benefits:      []string{"More energy", "Better concentration", "Easy first win of the day"},
			Tips:          []string{"Keep a glass by the bed", "Add lemon if you like", "Pair it with another morning habit"},
			Priority:      62,
		},
		Match: challenge("Low energy"),
	},
	{
		Recommendation: models.Recommendation{
			ID:            "anchor-routine",
			Title:         "Anchor Routine",
			Description:   "A short fixed routine right after waking, whatever time that is",
			Category:      models.CategoryProductivity,
			Difficulty:    models.DifficultyMedium,
			EstimatedTime: "15 minutes",
			Benefits:      []string{"Stability on chaotic days", "Habit cue independent of the clock", "Calmer starts"},
			Tips:          []string{"Keep it to three steps", "Attach it to your first coffee", "Do it even on days off"},
			Priority:      60,
		},
		Match: anyOf(workSchedule("Shift work", "Irregular hours"), challenge("Staying consistent")),
	},
	{
		Recommendation: models.Recommendation{
			ID:            "gratitude-message",
			Title:         "Gratitude Message",
			Description:   "Send one message of thanks or appreciation to someone each day",
			Category:      models.CategoryMindfulness,
			Difficulty:    models.DifficultyEasy,
			EstimatedTime: "5 minutes",
			Benefits:      []string{"Stronger relationships", "More positive outlook", "Small daily connection"},
			Tips:          []string{"Keep a list of people to thank", "Be specific", "Mix texts, calls and notes"},
			Priority:      58,
		},
		Match: goal("Better relationships"),
	},
}
