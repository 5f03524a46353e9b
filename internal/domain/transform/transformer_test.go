package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scivalidate/preview/internal/domain/mocks"
	"github.com/scivalidate/preview/internal/domain/source"
)

func testComponent(id, src string) source.Component {
	return source.Component{ID: id, Title: id, Source: src}
}

func TestRewriteBindsImports(t *testing.T) {
	tr := New(mocks.NewRegistry())

	comp := testComponent("badge", `import { ValidationBadge } from './ValidationBadge';
import { LoadingSpinner } from './LoadingSpinner';

export default function Badge(props) {
  return h(ValidationBadge, { status: 'verified' });
}
`)

	result, err := tr.Rewrite(comp)
	require.NoError(t, err)

	assert.Equal(t, "Badge", result.View)
	assert.Equal(t, []string{"ValidationBadge", "LoadingSpinner"}, result.Bound)

	assert.NotContains(t, result.Source, "import")
	assert.NotContains(t, result.Source, "export")
	assert.Contains(t, result.Source, `const ValidationBadge = __mocks__["ValidationBadge"];`)
	assert.Contains(t, result.Source, `const LoadingSpinner = __mocks__["LoadingSpinner"];`)
	assert.Contains(t, result.Source, "function Badge(props)")
	assert.Contains(t, result.Source, `return Badge({ entityId: "42", facultyId: "42" });`)
}

func TestRewriteDefaultImportForm(t *testing.T) {
	tr := New(mocks.NewRegistry())

	comp := testComponent("card", `import FacultyCard from './FacultyCard';

export default function Card(props) {
  return h(FacultyCard, { name: 'x' });
}
`)

	result, err := tr.Rewrite(comp)
	require.NoError(t, err)
	assert.Equal(t, []string{"FacultyCard"}, result.Bound)
	assert.Contains(t, result.Source, `const FacultyCard = __mocks__["FacultyCard"];`)
}

func TestRewriteMissingMock(t *testing.T) {
	tr := New(mocks.NewRegistry())

	comp := testComponent("timeline", `import { MetricStat } from './MetricStat';
import { TimelineChart } from './TimelineChart';

export default function Timeline(props) {
  return h(TimelineChart, {});
}
`)

	_, err := tr.Rewrite(comp)
	require.Error(t, err)

	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "timeline", terr.Component)
	assert.Equal(t, []string{"TimelineChart"}, terr.Missing)
	assert.Contains(t, err.Error(), "TimelineChart")
}

func TestRewriteExportedReference(t *testing.T) {
	tr := New(mocks.NewRegistry())

	comp := testComponent("ref", `function Viewer(props) {
  return h('div', null, 'ok');
}
export default Viewer;
`)

	result, err := tr.Rewrite(comp)
	require.NoError(t, err)
	assert.Equal(t, "Viewer", result.View)
	assert.NotContains(t, result.Source, "export")
	assert.Contains(t, result.Source, "return Viewer(")
}

func TestRewriteNoExport(t *testing.T) {
	tr := New(mocks.NewRegistry())

	comp := testComponent("bare", `function Hidden(props) {
  return h('div', null, 'x');
}
`)

	_, err := tr.Rewrite(comp)
	require.Error(t, err)

	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "bare", terr.Component)
	assert.Contains(t, terr.Reason, "export")
}

func TestRewriteMissingViewDefinition(t *testing.T) {
	tr := New(mocks.NewRegistry())

	// Export references a name that is never defined as a function.
	comp := testComponent("ghost", `const Ghost = 42;
export default Ghost;
`)

	_, err := tr.Rewrite(comp)
	require.Error(t, err)

	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "ghost", terr.Component)
	assert.Equal(t, "Ghost", terr.Fragment)
}

func TestRewriteLeavesUnknownImportShapes(t *testing.T) {
	tr := New(mocks.NewRegistry())

	// Side-effect imports are not part of the known convention; they stay
	// in the text and fail later inside the sandbox.
	comp := testComponent("styles", `import './styles.css';

export default function Styled(props) {
  return h('div', null, 'styled');
}
`)

	result, err := tr.Rewrite(comp)
	require.NoError(t, err)
	assert.Contains(t, result.Source, "./styles.css")
	assert.Empty(t, result.Bound)
}

func TestRewriteDeterministicProps(t *testing.T) {
	tr := New(mocks.NewRegistry())
	comp := testComponent("stable", `export default function Stable(props) {
  return h('div', null, props.facultyId);
}
`)

	first, err := tr.Rewrite(comp)
	require.NoError(t, err)
	second, err := tr.Rewrite(comp)
	require.NoError(t, err)
	assert.Equal(t, first.Source, second.Source)
}

func TestRewriteCustomDefaults(t *testing.T) {
	tr := New(mocks.NewRegistry()).WithDefaults(map[string]string{"facultyId": "7"})
	comp := testComponent("custom", `export default function Custom(props) {
  return h('div', null, props.facultyId);
}
`)

	result, err := tr.Rewrite(comp)
	require.NoError(t, err)
	assert.True(t, strings.Contains(result.Source, `return Custom({ facultyId: "7" });`))
}
