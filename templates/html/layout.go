package templates

import (
	"fmt"
	"html"
)

// layout wraps already escaped body HTML in the branded shell. The subject
// is escaped here.
func layout(subject, bodyHTML string) string {
	safeSubject := html.EscapeString(subject)

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>%s</title>
  <style type="text/css">
    body { font-family: Arial, Helvetica, sans-serif; margin: 0; padding: 0; background-color: #f3f4f6; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background-color: #1e3a8a; padding: 32px 24px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 22px; }
    .content { padding: 32px 24px; color: #111827; line-height: 1.6; font-size: 15px; }
    .item { border-left: 3px solid #1e3a8a; padding: 4px 12px; margin: 16px 0; }
    .item h3 { margin: 0 0 4px 0; font-size: 16px; }
    .button { display: inline-block; background-color: #1e3a8a; color: #fff; padding: 10px 20px; text-decoration: none; border-radius: 4px; }
    .footer { padding: 24px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      %s
    </div>
    <div class="footer">
      <p>NE Attend. You receive this because you have an account.</p>
    </div>
  </div>
</body>
</html>`, safeSubject, safeSubject, bodyHTML)
}

// RenderGenericEmail renders plain text inside the branded layout. The body is
// escaped and newlines become <br>.
func RenderGenericEmail(subject, bodyContent string) string {
	return layout(subject, textToHTML(bodyContent))
}
