// Package storage provides helper clients for moving whole objects between
// memory or the local filesystem and Google Cloud Storage or Amazon S3.
//
// GCSClient and S3Client implement Helper. Every transfer is single-shot: the
// object is written from, or read into, one byte slice. There is no resumable or
// chunked transfer and no retrying; overwrite and missing-object behaviour is the
// store's own. GCS refuses to delete a missing object while S3 reports success.
//
// UploadFile and DownloadFile work on a go-billy filesystem, the host filesystem
// unless another one is set with WithFilesystem.
//
// # Usage
//
//	client, err := storage.NewGCS(ctx, storage.WithClientOptions(opts...))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	if err := client.UploadFromBytes(ctx, "my-bucket", "reports/q1.pdf", "", data); err != nil {
//	    return err
//	}
//
//	path, err := client.DownloadFile(ctx, "my-bucket", "reports/q1.pdf", "/tmp/reports")
package storage
