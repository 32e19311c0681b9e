package configuration

import "github.com/adampresley/configinator"

type Config struct {
	AdminEmail          string `flag:"adminemail" env:"ADMIN_EMAIL" default:"support@unitedhandsbd.org" description:"Address that receives contact and donation notifications"`
	DSN                 string `flag:"dsn" env:"DSN" default:"file:./data/unitedhandsbd.db" description:"Data source name"`
	EmailFrom           string `flag:"emailfrom" env:"EMAIL_FROM" default:"United Hands Bangladesh <noreply@unitedhandsbd.org>" description:"From address for outgoing email"`
	FacebookAccessToken string `flag:"fbtoken" env:"FACEBOOK_ACCESS_TOKEN" default:"" description:"Facebook page access token"`
	FacebookGraphURL    string `flag:"fbgraphurl" env:"FACEBOOK_GRAPH_URL" default:"https://graph.facebook.com/v21.0" description:"Facebook Graph API base URL"`
	FacebookPageID      string `flag:"fbpageid" env:"FACEBOOK_PAGE_ID" default:"" description:"Facebook page whose photos fill the gallery"`
	GalleryDefaultLimit int    `flag:"gallerylimit" env:"GALLERY_DEFAULT_LIMIT" default:"200" description:"Number of gallery images returned when no limit is given"`
	GalleryMaxLimit     int    `flag:"gallerymax" env:"GALLERY_MAX_LIMIT" default:"500" description:"Largest gallery limit a caller may request"`
	Host                string `flag:"host" env:"HOST" default:"localhost:8081" description:"The address and port to bind the HTTP server to"`
	HttpClientTimeout   int    `flag:"httptimeout" env:"HTTP_CLIENT_TIMEOUT" default:"30" description:"Timeout in seconds for outbound HTTP calls"`
	LogLevel            string `flag:"loglevel" env:"LOG_LEVEL" default:"debug" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MailerLiteApiKey    string `flag:"mailerlitekey" env:"MAILERLITE_API_KEY" default:"" description:"MailerLite API key. Empty logs subscriptions only"`
	MailerLiteApiURL    string `flag:"mailerliteurl" env:"MAILERLITE_API_URL" default:"https://connect.mailerlite.com/api" description:"MailerLite API base URL"`
	MailerLiteGroupID   string `flag:"mailerlitegroup" env:"MAILERLITE_GROUP_ID" default:"" description:"MailerLite group new subscribers join"`
	ResendApiKey        string `flag:"resendkey" env:"RESEND_API_KEY" default:"" description:"Resend API key. Empty logs emails instead of sending"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}
