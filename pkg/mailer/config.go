package mailer

// Config holds outbound mail configuration. PostmarkServerToken and
// PostmarkAccountToken are optional so development environments can run on
// the DevSender instead. SenderEmail is required: it establishes the sender
// identity for every outbound notification and appears verbatim inside the
// "Compact Connect <...>" From header.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	AWSRegion            string `env:"AWS_REGION" envDefault:"us-east-1"`
}
