// internal/render/builtin.go
package render

import "fmt"

// Builtin is one of the fixed pre-authored templates. Each bundles a subject,
// an HTML body parameterized by the recipient display name, and exactly one
// inline-image slot referenced by cid.
type Builtin struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// ImageCID is the content-id the body references and the message builder
	// embeds the template image under. The .jpg suffix drives the MIME type.
	ImageCID string `json:"-"`

	generate func(name string) (subject, body string)
}

// Render produces the subject and HTML body for one recipient.
func (b Builtin) Render(name string) (subject, body string) {
	return b.generate(name)
}

var builtins = map[string]Builtin{
	"1": {
		ID:          "1",
		Name:        "Event Invitation",
		Description: "Main event invitation with registration link",
		ImageCID:    "invitation_banner.jpg",
		generate:    invitationEmail,
	},
	"2": {
		ID:          "2",
		Name:        "Submission Reminder",
		Description: "Last call for submissions (10 days left)",
		ImageCID:    "reminder_banner.jpg",
		generate:    reminderEmail,
	},
	"3": {
		ID:          "3",
		Name:        "Final Reminder",
		Description: "Final reminder before the deadline closes",
		ImageCID:    "final_banner.jpg",
		generate:    finalReminderEmail,
	},
}

// BuiltinByID looks up a built-in template.
func BuiltinByID(id string) (Builtin, bool) {
	b, ok := builtins[id]
	return b, ok
}

// Builtins lists the built-in templates in id order, for the API.
func Builtins() []Builtin {
	return []Builtin{builtins["1"], builtins["2"], builtins["3"]}
}

func invitationEmail(name string) (string, string) {
	subject := "You're Invited | Meet Our Speakers"

	body := fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">

<p style="font-size: 16px;"><strong>Dear %s</strong></p>

<p style="font-size: 14px;">Join us at this year's <strong>Annual Conference</strong> for three days of talks, workshops and networking with leading experts in the field.</p>

<div style="background-color: #f8f9fa; padding: 15px; border-left: 4px solid #007bff; margin: 20px 0;">
<p style="margin: 0; font-size: 14px;"><strong>Date:</strong> 28th &ndash; 30th November</p>
<p style="margin: 0; font-size: 14px;"><strong>Venue:</strong> Main Conference Hall</p>
</div>

<div style="text-align: center; margin: 25px 0;">
<a href="https://example.com/register" style="background-color: #007bff; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px; font-size: 16px; font-weight: bold;">
Secure your spot today
</a>
</div>

<div style="text-align: center; margin: 20px 0;">
<img src="cid:invitation_banner.jpg" style="max-width: 100%%; height: auto; border-radius: 8px;" alt="Event Invitation">
</div>

<div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee;">
<p style="font-size: 14px; margin: 0;">Warm regards,</p>
<p style="font-size: 14px; margin: 0;"><strong>The Organizing Team</strong></p>
</div>

</div>
</body>
</html>`, name)

	return subject, body
}

func reminderEmail(name string) (string, string) {
	subject := "Submissions Close Soon - Last Call!"

	body := fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">

<p style="font-size: 16px;"><strong>Dear %s</strong></p>

<div style="background-color: #ff6b6b; color: white; padding: 15px; text-align: center; border-radius: 8px; margin: 20px 0;">
<h2 style="margin: 0; font-size: 24px;">ONLY 10 DAYS LEFT!</h2>
<p style="margin: 5px 0 0 0; font-size: 16px;">Don't miss this opportunity!</p>
</div>

<p style="font-size: 14px;">Submit your abstract and present your work alongside leading specialists at this year's conference.</p>

<div style="background-color: #f8f9fa; padding: 15px; border-left: 4px solid #28a745; margin: 20px 0;">
<p style="margin: 0; font-size: 14px;"><strong>Showcase your research and gain recognition!</strong></p>
</div>

<div style="text-align: center; margin: 30px 0;">
<a href="https://example.com/submit" style="background-color: #28a745; color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; font-size: 18px; font-weight: bold; display: inline-block;">
SUBMIT NOW
</a>
</div>

<div style="text-align: center; margin: 20px 0;">
<img src="cid:reminder_banner.jpg" style="max-width: 100%%; height: auto; border-radius: 8px;" alt="Submission Reminder">
</div>

<div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee;">
<p style="font-size: 14px; margin: 0;">Warm regards,</p>
<p style="font-size: 14px; margin: 0;"><strong>The Organizing Team</strong></p>
</div>

</div>
</body>
</html>`, name)

	return subject, body
}

func finalReminderEmail(name string) (string, string) {
	subject := "Final Reminder: Submissions Close 14th Sept!"

	body := fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">

<p style="font-size: 16px;"><strong>Dear %s,</strong></p>

<div style="background-color: #dc3545; color: white; padding: 15px; text-align: center; border-radius: 8px; margin: 20px 0;">
<h2 style="margin: 0; font-size: 24px;">Final Reminder!</h2>
</div>

<p style="font-size: 14px;">Deadline: 14th Sept (Midnight)</p>

<div style="text-align: center; margin: 30px 0;">
<a href="https://example.com/register" style="background-color: #007bff; color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; font-size: 18px; font-weight: bold; display: inline-block;">
REGISTER NOW
</a>
</div>

<div style="text-align: center; margin: 20px 0;">
<img src="cid:final_banner.jpg" style="max-width: 100%%; height: auto; border-radius: 8px;" alt="Final Reminder">
</div>

<div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee;">
<p style="font-size: 14px; margin: 0;">Warm regards,</p>
<p style="font-size: 14px; margin: 0;"><strong>The Organizing Team</strong></p>
</div>

</div>
</body>
</html>`, name)

	return subject, body
}
