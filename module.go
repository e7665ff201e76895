package wirebox

// A Module is a collection of registry options.
// It can be used to export a re-usable group of related registrations.
//
// Example:
//
//	var StorageModule = wirebox.Module{
//		wirebox.WithProvider(NewDB),
//		wirebox.WithProvider(NewStore),
//		wirebox.WithProvider(NewService),
//	}
type Module []RegistryOption

func (Module) applyRegistry(*Registry) error { return nil }
func (Module) order() optionOrder            { return orderProvide }

// WithModule applies the options in a [Module] when calling [NewRegistry]
// or [Registry.NewScope].
//
// Example:
//
//	r, err := wirebox.NewRegistry(
//		wirebox.WithModule(StorageModule),
//		wirebox.WithProvider(NewHandler),
//	)
func WithModule(m Module) RegistryOption {
	return m
}

// flattenModules expands modules, recursively, into a flat option slice.
// The relative order of registrations is preserved so [WithOverride] in a
// later module applies after the registration it replaces.
func flattenModules(opts []RegistryOption) []RegistryOption {
	flat := make([]RegistryOption, 0, len(opts))
	for _, opt := range opts {
		if mod, ok := opt.(Module); ok {
			flat = append(flat, flattenModules(mod)...)
			continue
		}

		flat = append(flat, opt)
	}

	return flat
}
