package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	// CertificateCodePrefix starts every public verification code.
	CertificateCodePrefix = "HQ"
	CertificateArchiveDir = "certificados"
)

const (
	ContextUserKey   = "user"
	ContextConfigKey = "config"
)
