package vision

import "cardintake/internal/domain"

// BuildCardPrompt returns the description prompt for a patient card image.
// The model is asked for a readable free-form description rather than a
// rigid schema; the extract package turns the text into a structured record.
func BuildCardPrompt(kind domain.CardKind) string {
	subject := "patient identification card"
	if kind == domain.CardKindInsurance {
		subject = "health insurance card"
	}
	return `You are reading a photo of a ` + subject + `. Describe every piece of text printed on the card.

INSTRUCTIONS:
- Transcribe names, dates, identification numbers, addresses, and contact details exactly as printed. Do not invent or guess values that are not visible.
- When you can identify what a value is, label it on its own line, for example "First Name: Maria" or "Date of Birth: 03/14/1985".
- If the card shows a member ID, policy number, or group number, include it with its label.
- If the card shows the issuing insurance company or payer, name it.
- If any value is partially obscured or unreadable, omit it entirely rather than guessing.

You may summarize the card in a JSON object if that is the clearest way to present it, using keys like firstName, lastName, dateOfBirth, gender, phone, email, address, insuranceId, insuranceProvider. Plain labeled lines are equally acceptable.`
}
