// Package pigen models the configuration consumed by the pi-gen image
// build toolchain.
//
// A [Config] holds the flat set of build options, renders them as the
// KEY="value" file pi-gen reads, and validates each field against static
// rules and host-derived state (locale and timezone lists, stage
// directories). Stage-list entries are either well-known stage names
// ([Stage]) or arbitrary directories, and resolve to canonical absolute
// paths before the configuration is written.
//
// Example usage:
//
//	cfg := pigen.Default()
//	cfg.ImgName = "my-image"
//
//	if err := cfg.Validate(ctx, host.NewSystem()); err != nil {
//	    return err
//	}
//
//	if err := cfg.AbsolutizeStages("/opt/pi-gen"); err != nil {
//	    return err
//	}
//
//	os.WriteFile("/opt/pi-gen/config", []byte(cfg.Render()), 0644)
package pigen
