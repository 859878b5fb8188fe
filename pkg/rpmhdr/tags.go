package rpmhdr

import "github.com/sassoftware/go-rpmutils"

// Tag is a recognized header tag, named the way `rpm --querytags` names
// them, minus any RPMTAG_ prefix.
type Tag string

const (
	TagName         Tag = "NAME"
	TagVersion      Tag = "VERSION"
	TagRelease      Tag = "RELEASE"
	TagEpoch        Tag = "EPOCH"
	TagArch         Tag = "ARCH"
	TagSummary      Tag = "SUMMARY"
	TagDescription  Tag = "DESCRIPTION"
	TagLicense      Tag = "LICENSE"
	TagGroup        Tag = "GROUP"
	TagURL          Tag = "URL"
	TagVendor       Tag = "VENDOR"
	TagPackager     Tag = "PACKAGER"
	TagSourceRPM    Tag = "SOURCERPM"
	TagOS           Tag = "OS"
	TagDistribution Tag = "DISTRIBUTION"

	TagProvideName    Tag = "PROVIDENAME"
	TagProvideFlags   Tag = "PROVIDEFLAGS"
	TagProvideVersion Tag = "PROVIDEVERSION"
	TagRequireName    Tag = "REQUIRENAME"
	TagRequireFlags   Tag = "REQUIREFLAGS"
	TagRequireVersion Tag = "REQUIREVERSION"
	TagConflictName   Tag = "CONFLICTNAME"
	TagObsoleteName   Tag = "OBSOLETENAME"
	TagChangelogText  Tag = "CHANGELOGTEXT"
	TagPostIn         Tag = "POSTIN"
	TagPostUn         Tag = "POSTUN"
	TagPreIn          Tag = "PREIN"
	TagPreUn          Tag = "PREUN"

	// Denylisted per spec.md §4.2: non-semantic, derived from build time
	// or from re-derivable file locations, and therefore excluded from
	// the header phase of package comparison.
	TagSize            Tag = "SIZE"
	TagArchiveSize     Tag = "ARCHIVESIZE"
	TagBuildTime       Tag = "BUILDTIME"
	TagBaseNames       Tag = "BASENAMES"
	TagDirNames        Tag = "DIRNAMES"
	TagDirIndexes      Tag = "DIRINDEXES"
	TagFileClass       Tag = "FILECLASS"
	TagFileMTimes      Tag = "FILEMTIMES"
	TagFileInodes      Tag = "FILEINODES"
	TagHeaderID        Tag = "HEADERID"
	TagHeaderImmutable Tag = "HEADERIMMUTABLE"
	TagPackageID       Tag = "PACKAGEID"
	TagSigSize         Tag = "SIGSIZE"
)

// SkipHeaderTags is the fixed denylist PC's header phase excludes:
// overall size variants, archive size, build time, basenames/dirnames/
// dirindexes, file-class strings, file mtimes, file inodes, header id,
// the header-immutable blob, package id and signature size.
var SkipHeaderTags = map[Tag]struct{}{
	TagSize:            {},
	TagArchiveSize:     {},
	TagBuildTime:       {},
	TagBaseNames:       {},
	TagDirNames:        {},
	TagDirIndexes:      {},
	TagFileClass:       {},
	TagFileMTimes:      {},
	TagFileInodes:      {},
	TagHeaderID:        {},
	TagHeaderImmutable: {},
	TagPackageID:       {},
	TagSigSize:         {},
}

// notFoundSentinel is the string go-rpmutils (and rpm itself) return for
// a tag that legitimately has no value; treated as absent, never as a
// value to compare.
const notFoundSentinel = "(not found)"

// allHeaderTags enumerates every recognized scalar/array string tag PC's
// header phase inspects, skip-set tags included (the skip is applied by
// the caller, not by this enumeration).
var allHeaderTags = []Tag{
	TagName, TagVersion, TagRelease, TagEpoch, TagArch,
	TagSummary, TagDescription, TagLicense, TagGroup, TagURL,
	TagVendor, TagPackager, TagSourceRPM, TagOS, TagDistribution,
	TagProvideName, TagProvideFlags, TagProvideVersion,
	TagRequireName, TagRequireFlags, TagRequireVersion,
	TagConflictName, TagObsoleteName,
	TagChangelogText, TagPostIn, TagPostUn, TagPreIn, TagPreUn,
	TagSize, TagArchiveSize, TagBuildTime,
	TagBaseNames, TagDirNames, TagDirIndexes, TagFileClass,
	TagFileMTimes, TagFileInodes, TagHeaderID, TagHeaderImmutable,
	TagPackageID, TagSigSize,
}

// tagID maps a Tag to the go-rpmutils numeric tag constant. Kept as the
// single translation point so a corrected constant name only needs to
// change here.
var tagID = map[Tag]int{
	TagName:         rpmutils.NAME,
	TagVersion:      rpmutils.VERSION,
	TagRelease:      rpmutils.RELEASE,
	TagEpoch:        rpmutils.EPOCH,
	TagArch:         rpmutils.ARCH,
	TagSummary:      rpmutils.SUMMARY,
	TagDescription:  rpmutils.DESCRIPTION,
	TagLicense:      rpmutils.LICENSE,
	TagGroup:        rpmutils.GROUP,
	TagURL:          rpmutils.URL,
	TagVendor:       rpmutils.VENDOR,
	TagPackager:     rpmutils.PACKAGER,
	TagSourceRPM:    rpmutils.SOURCERPM,
	TagOS:           rpmutils.OS,
	TagDistribution: rpmutils.DISTRIBUTION,

	TagProvideName:    rpmutils.PROVIDENAME,
	TagProvideFlags:   rpmutils.PROVIDEFLAGS,
	TagProvideVersion: rpmutils.PROVIDEVERSION,
	TagRequireName:    rpmutils.REQUIRENAME,
	TagRequireFlags:   rpmutils.REQUIREFLAGS,
	TagRequireVersion: rpmutils.REQUIREVERSION,
	TagConflictName:   rpmutils.CONFLICTNAME,
	TagObsoleteName:   rpmutils.OBSOLETENAME,
	TagChangelogText:  rpmutils.CHANGELOGTEXT,
	TagPostIn:         rpmutils.POSTIN,
	TagPostUn:         rpmutils.POSTUN,
	TagPreIn:          rpmutils.PREIN,
	TagPreUn:          rpmutils.PREUN,

	TagSize:            rpmutils.SIZE,
	TagArchiveSize:     rpmutils.ARCHIVESIZE,
	TagBuildTime:       rpmutils.BUILDTIME,
	TagBaseNames:       rpmutils.BASENAMES,
	TagDirNames:        rpmutils.DIRNAMES,
	TagDirIndexes:      rpmutils.DIRINDEXES,
	TagFileClass:       rpmutils.FILECLASS,
	TagFileMTimes:      rpmutils.FILEMTIMES,
	TagFileInodes:      rpmutils.FILEINODES,
	TagHeaderID:        rpmutils.SHA1HEADER,
	TagHeaderImmutable: rpmutils.HEADERIMMUTABLE,
	TagPackageID:       rpmutils.SIGMD5,
	TagSigSize:         rpmutils.SIGSIZE,
}
