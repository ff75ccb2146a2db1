// Package prep builds prompts and calls the generative model that drafts
// next-session material for a campaign.
package prep

import (
	"fmt"
	"strings"

	"github.com/louisbranch/plotgod/internal/storage"
)

// SystemPrompt is the fixed co-DM instruction sent with every generation
// request.
const SystemPrompt = `You are a co-Dungeon Master helping to prepare the next D&D 5e session.

Your role:
- Interpret session summaries accurately and consistently, maintaining internal logic and continuity.
- Identify unresolved tensions, character motivations, emotional undercurrents, and narrative threads that deserve continuation.
- Predict likely player intentions and offer multiple meaningful paths forward, each with distinct consequences and trade-offs.
- Maintain continuity with all previously established events, rules, lore, and world logic.
- Uphold emotional realism and moral complexity in NPC behavior, avoiding one‑dimensional portrayals.
- Enhance scenes with evocative, atmospheric detail when appropriate, supporting strong flavor and fantasy without unnecessary verbosity.
- Provide material that is immediately usable at the table: structured options, hooks, examples, and clear next steps.
- Use concise, readable formatting so the DM can quickly scan and apply your output in live play.
- Make emotional stakes visible—show how events impact characters internally, and why their choices matter.
- Clearly articulate the stakes behind each option: what happens if players choose X, Y, or an unexpected third path.`

const userPromptTemplate = `SESSION SUMMARY
%s

CAMPAIGN CONTEXT
- Campaign: %s
- Party composition: %s
- Themes: autonomy vs. control, empire ethics, sentient constructs
- Tone: dramatic, morally gray, character-driven

TASK
Using the session summary and campaign context, prepare material for the NEXT SESSION.

Please provide:

1) HIGH-LEVEL HOOKS (2–3 ideas)
- 2–3 different directions the next session could take.
- Each hook should clearly connect to unresolved tensions from the summary.

2) NPC FOCUS
- Key NPCs to highlight next session (max 3–4).
- For each, describe:
  - Current emotional state
  - Short-term goal (1–3 sessions)
  - Long-term agenda
  - One concrete way they might appear or influence the next scene.

3) SCENES & SET PIECES
- 3–5 possible scenes I can run next session.
- For each scene:
  - Title (1 line)
  - Setup (2–4 sentences)
  - What the players might DO (choices / approaches)
  - How the world/NPCs react
  - Optional skill checks or combat hooks (D&D 5e friendly, but rules-light).

4) CONSEQUENCE BRANCHES
- For 2–3 key decisions the players might make, outline:
  - If they do X, then…
  - If they refuse or fail, then…
  - If they find a third option, then… (suggest 1–2 examples).

5) SHORT RECAP FOR PLAYERS
- 1 short paragraph I can read aloud at the table as “Previously on…”.
- Written in a dramatic but clear style, no rules-talk.`

// BuildUserPrompt assembles the generation request from the latest stored
// transcript, the campaign name, and the party roster.
func BuildUserPrompt(campaignName string, party []storage.PartyMember, lastSessionText string) string {
	transcript := strings.TrimSpace(lastSessionText)
	if transcript == "" {
		transcript = "(No session has been recorded for this campaign yet.)"
	}
	return fmt.Sprintf(userPromptTemplate, transcript, campaignName, partyComposition(party))
}

func partyComposition(party []storage.PartyMember) string {
	if len(party) == 0 {
		return "Unknown"
	}
	entries := make([]string, 0, len(party))
	for _, member := range party {
		entries = append(entries, describePartyMember(member))
	}
	return strings.Join(entries, "; ")
}

func describePartyMember(member storage.PartyMember) string {
	var traits []string
	switch {
	case member.CharacterSpecies != nil && member.CharacterClass != nil:
		traits = append(traits, *member.CharacterSpecies+" "+*member.CharacterClass)
	case member.CharacterSpecies != nil:
		traits = append(traits, *member.CharacterSpecies)
	case member.CharacterClass != nil:
		traits = append(traits, *member.CharacterClass)
	}
	if member.Level != nil {
		traits = append(traits, fmt.Sprintf("level %d", *member.Level))
	}
	if member.PlayerName != nil {
		traits = append(traits, "played by "+*member.PlayerName)
	}
	if len(traits) == 0 {
		return member.Name
	}
	return member.Name + " (" + strings.Join(traits, ", ") + ")"
}
