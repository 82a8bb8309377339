// Package ipm decodes batch files of ISO8583 card payment messages, such as
// Mastercard IPM clearing files.
//
// A batch is a stream of messages, each made of a 4 byte message type
// indicator, a 16 byte presence bitmap and the data elements the bitmap
// selects. The layout of the elements comes from a schema.Config:
//
//	cfg, err := schema.LoadFile("ipm.yaml")
//	if err != nil {
//		return err
//	}
//
//	r, err := ipm.Open(ctx, "s3://clearing/T112.ipm.gz", cfg, ipm.WithRDW(), ipm.WithBlocking(0))
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//
//	for r.Next() {
//		pan, _ := r.Message().Element(2)
//		...
//	}
//
//	if err := r.Err(); err != nil {
//		return err
//	}
//
// Decoding is strict by default: a message that cannot be read completely
// stops the batch with an error, and nothing is resynchronised.
package ipm
