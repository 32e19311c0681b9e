package configuration

import "github.com/adampresley/configinator"

type Config struct {
	AwsEndpointUrl     string `flag:"awsep" env:"AWS_ENDPOINT_URL" default:"http://localhost:4566" description:"AWS endpoint URL"`
	AwsRegion          string `flag:"awsregion" env:"AWS_REGION" default:"ap-south-1" description:"AWS region"`
	AwsAccessKeyId     string `flag:"awsaccesskeyid" env:"AWS_ACCESS_KEY_ID" default:"" description:"AWS access key ID"`
	AwsSecretAccessKey string `flag:"awssecretaccesskey" env:"AWS_SECRET_ACCESS_KEY" default:"" description:"AWS secret access key"`
	AwsBucket          string `flag:"awsbucket" env:"AWS_BUCKET" default:"" description:"S3 bucket for optimized images. Empty skips uploading"`
	ImagesDir          string `flag:"dir" env:"IMAGES_DIR" default:"./public/images/gallery" description:"Directory of source images"`
	LogLevel           string `flag:"loglevel" env:"LOG_LEVEL" default:"info" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MaxWorkers         int    `flag:"workers" env:"MAX_WORKERS" default:"4" description:"Maximum number of concurrent image workers"`
	Mode               string `flag:"mode" env:"MODE" default:"all" description:"What to produce. Valid values are 'optimize', 'variants', and 'all'"`
	Profile            string `flag:"profile" env:"PROFILE" default:"gallery" description:"Size profile. Valid values are 'gallery' and 'team'"`
	UploadPrefix       string `flag:"prefix" env:"UPLOAD_PREFIX" default:"images" description:"Key prefix for uploaded images"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}
