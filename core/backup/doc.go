// Package backup copies a spreadsheet aside before it is overwritten.
//
// A backup is a byte-for-byte copy named "<stem>-backup-<unix-ms><ext>". When an
// object store client is configured, the copy is also mirrored to the bucket under
// the same name. A missing target needs no backup and is not an error.
//
// # Usage
//
//	mgr := backup.NewManager(cfg.Backup, store, cfg.Storage.Bucket, log)
//	path, err := mgr.Backup(ctx, "concentrado-general.xlsx")
//	if err != nil {
//	    return err // never overwrite without a backup
//	}
package backup
