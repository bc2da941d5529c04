package notification

import (
	"bytes"
	"fmt"
	"html/template"
)

// Link is a named URL listed in a job email.
type Link struct {
	Name string
	URL  string
}

// JobEmail is the data rendered into the job emails.
type JobEmail struct {
	Team          string
	ContactName   string
	JobID         string
	CustomerName  string
	MachineLabel  string
	Employee      string
	Technician    string
	Date          string
	TravelMinutes int
	TimeIn        string
	TimeOut       string
	Description   string
	Comments      string
	LeftMedia     []Link
}

var customerTmpl = template.Must(template.New("customer").Parse(`<p>Dear {{.ContactName}},</p>
<p>Thank you for choosing {{.Team}} for your service needs. Below are your job details:</p>
<ul>
  <li><strong>Job ID:</strong> {{.JobID}}</li>
  <li><strong>Customer:</strong> {{.CustomerName}}</li>
  <li><strong>Machine:</strong> {{.MachineLabel}}</li>
  <li><strong>Employee:</strong> {{.Employee}}</li>
  <li><strong>Technician:</strong> {{.Technician}}</li>
  <li><strong>Date:</strong> {{.Date}}</li>
  <li><strong>Description:</strong> {{.Description}}</li>
  {{- if .Comments}}
  <li><strong>Additional Comments:</strong> {{.Comments}}</li>
  {{- end}}
</ul>
<p><strong>Signature:</strong> attached.</p>
<p><strong>Machine as it was left:</strong></p>
<ul>
  {{- range .LeftMedia}}
  <li><a href="{{.URL}}">{{.Name}}</a></li>
  {{- end}}
</ul>
<p>Please find attached your employee's signature and the multimedia of the machine as it was left by our technician.</p>
<p>We appreciate your business and look forward to serving you again.</p>
<p>Sincerely,<br/>{{.Team}} Service Team</p>
`))

var internalTmpl = template.Must(template.New("internal").Parse(`<p>New service job logged:</p>
<ul>
  <li><strong>Job ID:</strong> {{.JobID}}</li>
  <li><strong>Customer:</strong> {{.CustomerName}}</li>
  <li><strong>Machine:</strong> {{.MachineLabel}}</li>
  <li><strong>Employee:</strong> {{.Employee}}</li>
  <li><strong>Technician:</strong> {{.Technician}}</li>
  <li><strong>Date:</strong> {{.Date}}</li>
  <li><strong>Travel Time:</strong> {{.TravelMinutes}} minutes</li>
  <li><strong>Time In:</strong> {{.TimeIn}}</li>
  <li><strong>Time Out:</strong> {{.TimeOut}}</li>
  <li><strong>Description:</strong> {{.Description}}</li>
  {{- if .Comments}}
  <li><strong>Additional Comments:</strong> {{.Comments}}</li>
  {{- end}}
</ul>
<p><strong>Signature:</strong> attached.</p>
<p><strong>Machine as it was left:</strong></p>
<ul>
  {{- range .LeftMedia}}
  <li><a href="{{.URL}}">{{.Name}}</a></li>
  {{- end}}
</ul>
`))

// CustomerConfirmation renders the email sent to the customer after a job.
func CustomerConfirmation(data JobEmail) (subject, body string, err error) {
	body, err = render(customerTmpl, data)
	return fmt.Sprintf("Service Job Confirmation – %s", data.JobID), body, err
}

// InternalSummary renders the email sent to the office after a job.
func InternalSummary(data JobEmail) (subject, body string, err error) {
	body, err = render(internalTmpl, data)
	return fmt.Sprintf("Service Job Logged – %s", data.JobID), body, err
}

func render(t *template.Template, data JobEmail) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}
