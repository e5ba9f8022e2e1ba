package question

import "github.com/mirall/archetype/internal/domain/trait"

// defaultFixedLength is how many base questions the fixed strategy asks
// out of the default bank; the remaining base questions serve as skip
// replacements.
const defaultFixedLength = 12

// Reserved id ranges per family. Purely an authoring convention so bank
// files stay readable; runtime dispatch is on Family, never on id math.
const (
	baseIDStart       = 1
	weakSignalIDStart = 101
	lowEnergyIDStart  = 201
)

func scores(a, o, c, e, x, p int) trait.Scores {
	return trait.Scores{
		trait.Affinity:           a,
		trait.Openness:           o,
		trait.Conscientiousness:  c,
		trait.EmotionalStability: e,
		trait.Extraversion:       x,
		trait.Positivity:         p,
	}
}

// DefaultQuestions returns the compiled-in question bank: sixteen base
// questions (the fixed strategy asks the first twelve), three weak-signal
// calibration questions, and three low-energy calibration questions.
func DefaultQuestions() []Question {
	return []Question{
		{
			ID:       baseIDStart,
			Scenario: "A friend invites you to a rooftop party where you know almost nobody.",
			Prompt:   "What do you do first?",
			Kind:     KindSingle,
			Family:   FamilyBase,
			Options: []Option{
				{Value: "work_the_room", Text: "Introduce yourself around until you've met everyone", Scores: scores(2, 0, 0, 0, 5, 2)},
				{Value: "find_one_person", Text: "Find one interesting person and talk all night", Scores: scores(5, 1, 0, 1, 0, 1)},
				{Value: "observe_first", Text: "Hang back, watch the crowd, join when it feels right", Scores: scores(0, 1, 2, 4, -2, 0)},
				{Value: "help_host", Text: "Help the host with drinks so you have something to do", Scores: scores(2, 0, 4, 1, 0, 1)},
			},
			Discriminates: []trait.Key{trait.Extraversion, trait.Affinity},
		},
		{
			ID:       baseIDStart + 1,
			Scenario: "Your weekend is suddenly free.",
			Prompt:   "What fills it?",
			Kind:     KindSingle,
			Family:   FamilyBase,
			Options: []Option{
				{Value: "spontaneous_trip", Text: "A spontaneous trip somewhere you've never been", Scores: scores(0, 5, -1, 1, 2, 2)},
				{Value: "plan_projects", Text: "Finally finishing the projects on your list", Scores: scores(0, 0, 5, 1, -1, 1)},
				{Value: "friends_over", Text: "Inviting friends over and cooking together", Scores: scores(4, 0, 1, 1, 3, 2)},
				{Value: "quiet_recharge", Text: "A quiet recharge: books, walks, no plans", Scores: scores(0, 1, 0, 5, -3, 1)},
			},
			Discriminates: []trait.Key{trait.Openness, trait.Conscientiousness},
		},
		{
			ID:       baseIDStart + 2,
			Scenario: "A group project at work is going off the rails.",
			Prompt:   "Your instinct is to…",
			Kind:     KindSingle,
			Family:   FamilyBase,
			Options: []Option{
				{Value: "restructure", Text: "Restructure the plan and assign clear owners", Scores: scores(0, 0, 5, 2, 1, 0)},
				{Value: "rally_team", Text: "Rally everyone's mood before touching the plan", Scores: scores(3, 0, 0, 1, 3, 4)},
				{Value: "stay_calm", Text: "Stay calm, absorb the chaos, keep your part solid", Scores: scores(1, 0, 2, 5, -1, 0)},
				{Value: "rethink_idea", Text: "Question whether the whole approach is wrong", Scores: scores(0, 5, 0, 0, 0, -1)},
			},
			Discriminates: []trait.Key{trait.Conscientiousness, trait.EmotionalStability},
		},
		{
			ID:       baseIDStart + 3,
			Scenario: "You're choosing between two events on the same night.",
			Prompt:   "Pick the one most like you, then your second choice.",
			Kind:     KindDual,
			Family:   FamilyBase,
			Options: []Option{
				{Value: "big_concert", Text: "A loud concert with a huge crowd", Scores: scores(0, 1, 0, 0, 4, 3)},
				{Value: "dinner_party", Text: "A small dinner party with close friends", Scores: scores(5, 0, 1, 1, 0, 1)},
				{Value: "art_opening", Text: "An experimental art opening", Scores: scores(0, 5, 0, 0, 1, 1)},
				{Value: "game_night", Text: "A structured game night with rules and scoreboards", Scores: scores(1, 0, 4, 1, 1, 1)},
			},
			Discriminates: []trait.Key{trait.Extraversion, trait.Openness, trait.Affinity},
		},
		{
			ID:       baseIDStart + 4,
			Scenario: "Someone close to you cancels plans last minute.",
			Prompt:   "Honestly, how do you react?",
			Kind:     KindSingle,
			Family:   FamilyBase,
			Options: []Option{
				{Value: "no_big_deal", Text: "No big deal — plans change", Scores: scores(0, 1, 0, 5, 0, 2)},
				{Value: "worry", Text: "Wonder if something's wrong between you", Scores: scores(3, 0, 0, -3, 0, -1)},
				{Value: "replan_fast", Text: "Immediately fill the slot with something else", Scores: scores(0, 2, 2, 1, 3, 1)},
				{Value: "relieved", Text: "Quietly relieved — a free evening appeared", Scores: scores(-1, 0, 0, 3, -3, 1)},
			},
			Discriminates: []trait.Key{trait.EmotionalStability, trait.Affinity},
		},
		{
			ID:       baseIDStart + 5,
			Scenario: "A stranger at a café asks what you're passionate about.",
			Prompt:   "You…",
			Kind:     KindSingle,
			Family:   FamilyBase,
			Options: []Option{
				{Value: "light_up", Text: "Light up and talk for twenty minutes", Scores: scores(1, 2, 0, 0, 4, 4)},
				{Value: "deflect_ask", Text: "Give a short answer and ask about them instead", Scores: scores(4, 0, 0, 1, 0, 1)},
				{Value: "measured", Text: "Give a thoughtful, measured answer", Scores: scores(0, 2, 3, 3, -1, 0)},
				{Value: "odd_topic", Text: "Pick the strangest thing you're into and see how they react", Scores: scores(0, 5, -1, 0, 1, 2)},
			},
			Discriminates: []trait.Key{trait.Extraversion, trait.Positivity},
		},
		{
			ID:       baseIDStart + 6,
			Scenario: "You've been handed the office party budget.",
			Prompt:   "What does the party look like?",
			Kind:     KindSingle,
			Family:   FamilyBase,
			Options: []Option{
				{Value: "themed_bash", Text: "A wild themed bash nobody forgets", Scores: scores(0, 4, -1, 0, 4, 3)},
				{Value: "tight_ship", Text: "A well-run evening: venue, schedule, dietary lists", Scores: scores(1, 0, 5, 2, 0, 0)},
				{Value: "cozy_rooms", Text: "Small cozy spaces so people actually talk", Scores: scores(5, 0, 1, 1, -1, 1)},
				{Value: "low_key", Text: "Low-key drinks; the budget mostly goes back", Scores: scores(0, 0, 2, 4, -2, 0)},
			},
			Discriminates: []trait.Key{trait.Conscientiousness, trait.Extraversion},
		},
		{
			ID:       baseIDStart + 7,
			Scenario: "A heated argument breaks out in your friend group chat.",
			Prompt:   "Your move?",
			Kind:     KindSingle,
			Family:   FamilyBase,
			Options: []Option{
				{Value: "mediate", Text: "Step in and mediate until it cools down", Scores: scores(5, 0, 1, 2, 1, 1)},
				{Value: "joke_defuse", Text: "Defuse it with a perfectly timed joke", Scores: scores(1, 1, 0, 1, 2, 5)},
				{Value: "mute_wait", Text: "Mute the chat and wait it out", Scores: scores(-1, 0, 0, 4, -2, 0)},
				{Value: "take_side", Text: "Say what you actually think, clearly", Scores: scores(0, 2, 2, 1, 2, -1)},
			},
			Discriminates: []trait.Key{trait.Affinity, trait.Positivity},
		},
		{
			ID:       baseIDStart + 8,
			Scenario: "You find a flyer for a workshop in a discipline you know nothing about.",
			Prompt:   "Do you go?",
			Kind:     KindSingle,
			Family:   FamilyBase,
			Options: []Option{
				{Value: "sign_up_now", Text: "Sign up immediately — unknown is the point", Scores: scores(0, 6, -1, 0, 1, 2)},
				{Value: "research_first", Text: "Research it properly first, then maybe", Scores: scores(0, 2, 4, 1, -1, 0)},
				{Value: "bring_friend", Text: "Only if a friend comes along", Scores: scores(4, 1, 0, 0, 1, 1)},
				{Value: "pass", Text: "Pass — your plate is full and that's fine", Scores: scores(0, -2, 2, 3, -1, 0)},
			},
			Discriminates: []trait.Key{trait.Openness},
		},
		{
			ID:       baseIDStart + 9,
			Scenario: "Midnight. A friend calls with a crisis.",
			Prompt:   "Pick what's most like you, then second most.",
			Kind:     KindDual,
			Family:   FamilyBase,
			Options: []Option{
				{Value: "drop_everything", Text: "Drop everything and go to them", Scores: scores(6, 0, 0, 0, 1, 0)},
				{Value: "calm_voice", Text: "Be the calm voice that talks them through it", Scores: scores(2, 0, 1, 5, 0, 1)},
				{Value: "fix_plan", Text: "Build them a step-by-step plan out of the mess", Scores: scores(1, 0, 5, 2, 0, 0)},
				{Value: "lift_mood", Text: "Make them laugh before anything else", Scores: scores(2, 0, 0, 1, 1, 5)},
			},
			Discriminates: []trait.Key{trait.Affinity, trait.EmotionalStability, trait.Positivity},
		},
		{
			ID:       baseIDStart + 10,
			Scenario: "Your ideal role on a trip with friends.",
			Prompt:   "Which is it?",
			Kind:     KindSingle,
			Family:   FamilyBase,
			Options: []Option{
				{Value: "itinerary", Text: "The itinerary keeper — tickets, times, backups", Scores: scores(0, 0, 6, 1, 0, 0)},
				{Value: "detour_finder", Text: "The detour finder — the alley nobody planned for", Scores: scores(0, 5, -2, 0, 2, 2)},
				{Value: "glue", Text: "The glue — making sure nobody feels left out", Scores: scores(5, 0, 1, 1, 1, 1)},
				{Value: "morale", Text: "The morale officer — energy, playlists, toasts", Scores: scores(1, 1, -1, 0, 4, 4)},
			},
			Discriminates: []trait.Key{trait.Conscientiousness, trait.Openness, trait.Positivity},
		},
		{
			ID:       baseIDStart + 11,
			Scenario: "Bad news lands an hour before an event you're hosting.",
			Prompt:   "What happens?",
			Kind:     KindSingle,
			Family:   FamilyBase,
			Options: []Option{
				{Value: "compartment", Text: "Box it up; the event runs, you process later", Scores: scores(0, 0, 2, 6, 0, 0)},
				{Value: "lean_on", Text: "Tell a close friend there; you need one person to know", Scores: scores(5, 0, 0, -1, 0, 0)},
				{Value: "cancel", Text: "Cancel — you can't fake an evening", Scores: scores(1, 0, -1, -3, -1, -1)},
				{Value: "channel_it", Text: "Channel it into making the night even bigger", Scores: scores(0, 1, 0, 0, 3, 3)},
			},
			Discriminates: []trait.Key{trait.EmotionalStability},
		},
		{
			ID:       baseIDStart + 12,
			Scenario: "A year from now, the thing you'd most like people to say about you.",
			Prompt:   "Which one?",
			Kind:     KindSingle,
			Family:   FamilyBase,
			Options: []Option{
				{Value: "showed_up", Text: "\"They always showed up for me\"", Scores: scores(6, 0, 1, 0, 0, 1)},
				{Value: "made_it_fun", Text: "\"Everything was more fun with them around\"", Scores: scores(1, 1, 0, 0, 3, 5)},
				{Value: "made_it_happen", Text: "\"They made things actually happen\"", Scores: scores(0, 0, 6, 1, 1, 0)},
				{Value: "changed_view", Text: "\"They changed how I see things\"", Scores: scores(0, 6, 0, 1, 0, 0)},
			},
			Discriminates: []trait.Key{trait.Affinity, trait.Conscientiousness, trait.Openness},
		},

		// Skip-replacement pool. Same shapes as the fixed twelve, reached
		// only when a presented question is skipped.
		{
			ID:       baseIDStart + 13,
			Scenario: "You walk into a room mid-conversation about a topic you love.",
			Prompt:   "You…",
			Kind:     KindSingle,
			Family:   FamilyBase,
			Options: []Option{
				{Value: "jump_in", Text: "Jump straight in with an opinion", Scores: scores(0, 1, 0, 0, 5, 2)},
				{Value: "listen_first", Text: "Listen until you understand the thread", Scores: scores(1, 1, 2, 4, -2, 0)},
				{Value: "pull_aside", Text: "Pull one person aside to go deeper", Scores: scores(5, 1, 0, 1, -1, 0)},
			},
			Discriminates: []trait.Key{trait.Extraversion, trait.Affinity},
		},
		{
			ID:       baseIDStart + 14,
			Scenario: "Your calendar app dies for a week.",
			Prompt:   "How does the week go?",
			Kind:     KindSingle,
			Family:   FamilyBase,
			Options: []Option{
				{Value: "paper_system", Text: "You rebuild the system on paper within hours", Scores: scores(0, 0, 6, 1, 0, 0)},
				{Value: "freeing", Text: "Honestly? It's freeing", Scores: scores(0, 4, -3, 2, 1, 2)},
				{Value: "friends_remind", Text: "Your friends keep you on track; they always do", Scores: scores(4, 0, -1, 1, 1, 1)},
			},
			Discriminates: []trait.Key{trait.Conscientiousness, trait.Openness},
		},
		{
			ID:       baseIDStart + 15,
			Scenario: "A delayed flight strands you for six hours.",
			Prompt:   "Those six hours are…",
			Kind:     KindSingle,
			Family:   FamilyBase,
			Options: []Option{
				{Value: "adventure", Text: "An excuse to explore the airport's weird corners", Scores: scores(0, 4, 0, 1, 1, 3)},
				{Value: "annoying_calm", Text: "Annoying, but you settle in without drama", Scores: scores(0, 0, 1, 6, -1, 0)},
				{Value: "new_friends", Text: "How you end up with two new friends at gate B12", Scores: scores(3, 1, 0, 0, 4, 2)},
			},
			Discriminates: []trait.Key{trait.EmotionalStability, trait.Positivity},
		},
		{
			ID:       baseIDStart + 16,
			Scenario: "You get to design a recurring gathering for people like you.",
			Prompt:   "It's…",
			Kind:     KindSingle,
			Family:   FamilyBase,
			Options: []Option{
				{Value: "salon", Text: "A salon: strange ideas, strong opinions", Scores: scores(0, 5, 0, 0, 1, 0)},
				{Value: "supper_club", Text: "A supper club where everyone's known by name", Scores: scores(5, 0, 1, 1, 0, 2)},
				{Value: "league", Text: "A league with seasons, standings, and trophies", Scores: scores(1, 0, 4, 0, 2, 2)},
			},
			Discriminates: []trait.Key{trait.Openness, trait.Affinity, trait.Conscientiousness},
		},

		// Weak-signal calibration: asked once when the mid-session profile
		// is too flat to separate candidates. Merged at half weight.
		{
			ID:       weakSignalIDStart,
			Scenario: "Forced choice — no middle ground this time.",
			Prompt:   "Which loss would sting more?",
			Kind:     KindSingle,
			Family:   FamilyWeakSignal,
			Options: []Option{
				{Value: "lose_people", Text: "A month without seeing the people you love", Scores: scores(8, 0, 0, 0, 2, 0)},
				{Value: "lose_novelty", Text: "A month where every day is identical", Scores: scores(0, 8, 0, 0, 0, 2)},
				{Value: "lose_control", Text: "A month where nothing goes to plan", Scores: scores(0, 0, 8, 2, 0, 0)},
				{Value: "lose_peace", Text: "A month of constant noise and drama", Scores: scores(0, 0, 0, 8, -2, 0)},
			},
			Discriminates: []trait.Key{trait.Affinity, trait.Openness, trait.Conscientiousness, trait.EmotionalStability},
		},
		{
			ID:       weakSignalIDStart + 1,
			Scenario: "Forced choice — pick the compliment you'd keep.",
			Prompt:   "Only one survives.",
			Kind:     KindSingle,
			Family:   FamilyWeakSignal,
			Options: []Option{
				{Value: "magnetic", Text: "\"You're magnetic in a room\"", Scores: scores(0, 0, 0, 0, 8, 4)},
				{Value: "rock", Text: "\"You're the steadiest person I know\"", Scores: scores(2, 0, 2, 8, 0, 0)},
				{Value: "original", Text: "\"You think like nobody else\"", Scores: scores(0, 8, 0, 0, 0, 2)},
				{Value: "devoted", Text: "\"Nobody cares like you do\"", Scores: scores(8, 0, 0, 0, 0, 2)},
			},
			Discriminates: []trait.Key{trait.Extraversion, trait.EmotionalStability, trait.Openness, trait.Affinity},
		},
		{
			ID:       weakSignalIDStart + 2,
			Scenario: "Forced choice — your unavoidable Tuesday.",
			Prompt:   "Which version do you pick?",
			Kind:     KindSingle,
			Family:   FamilyWeakSignal,
			Options: []Option{
				{Value: "packed_social", Text: "Back-to-back with people from nine to nine", Scores: scores(2, 0, 0, 0, 8, 2)},
				{Value: "deep_work", Text: "One hard problem, zero interruptions", Scores: scores(0, 2, 8, 2, -2, 0)},
				{Value: "wild_card", Text: "A blank day that fills itself with surprises", Scores: scores(0, 8, -2, 0, 2, 2)},
			},
			Discriminates: []trait.Key{trait.Extraversion, trait.Conscientiousness, trait.Openness},
		},

		// Low-energy calibration: surfaces quiet archetypes that the base
		// bank systematically under-detects. Merged at full weight.
		{
			ID:       lowEnergyIDStart,
			Scenario: "The party is great. Two hours in, something shifts.",
			Prompt:   "What's true for you?",
			Kind:     KindSingle,
			Family:   FamilyLowEnergy,
			Options: []Option{
				{Value: "battery_drains", Text: "Your battery is draining; you start planning a quiet exit", Scores: scores(0, 0, 0, 6, -6, 0)},
				{Value: "second_wind", Text: "Second wind — you're just getting started", Scores: scores(0, 0, 0, 0, 6, 3)},
				{Value: "depends_people", Text: "Depends entirely on who's still there", Scores: scores(5, 0, 0, 1, 0, 0)},
			},
			Discriminates: []trait.Key{trait.Extraversion, trait.EmotionalStability},
		},
		{
			ID:       lowEnergyIDStart + 1,
			Scenario: "Your favorite way to be with a close friend.",
			Prompt:   "Pick one.",
			Kind:     KindSingle,
			Family:   FamilyLowEnergy,
			Options: []Option{
				{Value: "parallel_quiet", Text: "Side by side, mostly quiet, completely comfortable", Scores: scores(4, 0, 0, 6, -4, 0)},
				{Value: "deep_talk", Text: "Hours of conversation that go somewhere real", Scores: scores(6, 2, 0, 0, 0, 0)},
				{Value: "shared_mission", Text: "Doing something together — building, cooking, training", Scores: scores(2, 0, 5, 1, 1, 1)},
			},
			Discriminates: []trait.Key{trait.EmotionalStability, trait.Affinity, trait.Conscientiousness},
		},
		{
			ID:       lowEnergyIDStart + 2,
			Scenario: "When a room finally empties and it's just you.",
			Prompt:   "The honest feeling is…",
			Kind:     KindSingle,
			Family:   FamilyLowEnergy,
			Options: []Option{
				{Value: "exhale", Text: "A long exhale — this is where you recover", Scores: scores(0, 0, 0, 7, -5, 1)},
				{Value: "echoes", Text: "You replay the best moments, smiling", Scores: scores(2, 0, 0, 1, 1, 5)},
				{Value: "whats_next", Text: "Already texting about the next one", Scores: scores(1, 1, 0, 0, 6, 2)},
			},
			Discriminates: []trait.Key{trait.EmotionalStability, trait.Extraversion, trait.Positivity},
		},
	}
}
