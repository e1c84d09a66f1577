package email

import "context"

// SendWelcomeEmail sends the welcome email to a newly registered user.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, name string) error {
	data := map[string]string{
		"UserName": name,
	}

	return c.SendEmail(ctx, to, "Welcome to LightBnB!", TemplateWelcome, data)
}
