package property

// CommonProperty is a well-known runtime property with a fixed name.
type CommonProperty int

const (
	TrustedPlatformAssemblies CommonProperty = iota
	NativeDllSearchDirectories
	PlatformResourceRoots
	AppDomainCompatSwitch
	AppContextBaseDirectory
	AppContextDepsFiles
	FxDepsFile
	ProbingDirectories
	FxProductVersion
	JitPath
	StartupHooks
	AppPaths
	AppNIPaths

	// NumCommonProperties is the sentinel; new properties go above it.
	NumCommonProperties
)

// Names are part of the runtime's contract and must match byte for byte.
var commonPropertyNames = [...]string{
	"TRUSTED_PLATFORM_ASSEMBLIES",
	"NATIVE_DLL_SEARCH_DIRECTORIES",
	"PLATFORM_RESOURCE_ROOTS",
	"AppDomainCompatSwitch",
	"APP_CONTEXT_BASE_DIRECTORY",
	"APP_CONTEXT_DEPS_FILES",
	"FX_DEPS_FILE",
	"PROBING_DIRECTORIES",
	"FX_PRODUCT_VERSION",
	"JIT_PATH",
	"STARTUP_HOOKS",
	"APP_PATHS",
	"APP_NI_PATHS",
}

// Fails to compile unless the name table has one entry per property.
var _ = [1]struct{}{}[len(commonPropertyNames)-int(NumCommonProperties)]

// String returns the fixed property name. It panics for values outside
// the enumeration.
func (p CommonProperty) String() string {
	if !p.Valid() {
		panic("property: invalid common property")
	}
	return commonPropertyNames[p]
}

// Valid reports whether p is a member of the enumeration.
func (p CommonProperty) Valid() bool {
	return p >= 0 && p < NumCommonProperties
}

// ParseCommonProperty maps a fixed property name back to its enum value.
// Matching is case-sensitive.
func ParseCommonProperty(name string) (CommonProperty, bool) {
	for i, n := range commonPropertyNames {
		if n == name {
			return CommonProperty(i), true
		}
	}
	return 0, false
}

// CommonProperties lists every common property in declaration order.
func CommonProperties() []CommonProperty {
	props := make([]CommonProperty, NumCommonProperties)
	for i := range props {
		props[i] = CommonProperty(i)
	}
	return props
}
